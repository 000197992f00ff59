package domain

import "strings"

// categoryOffset is the provider id of the first entry in Categories.
const categoryOffset = 9

// Categories lists the provider's categories in taxonomy order.
var Categories = []string{
	"General Knowledge", "Entertainment: Books", "Entertainment: Film",
	"Entertainment: Music", "Entertainment: Musicals & Theatres", "Entertainment: Television",
	"Entertainment: Video Games", "Entertainment: Board Games", "Science & Nature",
	"Science: Computers", "Science: Mathematics", "Mythology", "Sports", "Geography",
	"History", "Politics", "Art", "Celebrities", "Animals", "Vehicles",
	"Entertainment: Comics", "Science: Gadgets", "Entertainment: Japanese Anime & Manga",
	"Entertainment: Cartoon & Animations",
}

// CategoryID maps a category label to the provider id.
func CategoryID(label string) (int, bool) {
	for i, c := range Categories {
		if c == label {
			return i + categoryOffset, true
		}
	}
	return 0, false
}

// Difficulty is a provider difficulty level.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty accepts any casing of easy, medium or hard.
func ParseDifficulty(raw string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(raw))); d {
	case Easy, Medium, Hard:
		return d, nil
	}
	return "", Invalid("please pick a category and difficulty !")
}
