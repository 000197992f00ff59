package domain

// User is a player account as persisted by the user store.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Points   int    `json:"points"`
}

// Question is one multiple-choice record as delivered by the trivia provider.
// Text fields may still carry HTML entities.
type Question struct {
	Category         string   `json:"category,omitempty"`
	Type             string   `json:"type,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// QuestionQuery describes one request to the trivia provider.
type QuestionQuery struct {
	Amount     int
	CategoryID int
	Difficulty Difficulty
	Type       string
}

// SlotState is the visual/interactive state of an answer slot.
type SlotState string

const (
	SlotInteractive SlotState = "interactive"
	SlotCorrect     SlotState = "correct"
	SlotIncorrect   SlotState = "incorrect"
)

// Palette is the color contract for answer slots.
type Palette struct {
	Default   string `json:"default" yaml:"default"`
	Correct   string `json:"correct" yaml:"correct"`
	Incorrect string `json:"incorrect" yaml:"incorrect"`
}

// DefaultPalette matches the colors of the original desktop client.
var DefaultPalette = Palette{Default: "#1F6AA5", Correct: "green", Incorrect: "red"}

// Color returns the color a slot in the given state is painted with.
func (p Palette) Color(state SlotState) string {
	switch state {
	case SlotCorrect:
		return p.Correct
	case SlotIncorrect:
		return p.Incorrect
	default:
		return p.Default
	}
}

// SlotView is one rendered answer position.
type SlotView struct {
	ID       int       `json:"id"`
	Text     string    `json:"text"`
	State    SlotState `json:"state"`
	Color    string    `json:"color"`
	Disabled bool      `json:"disabled"`
}

// QuestionView is what the presentation surface renders for the active question.
type QuestionView struct {
	SessionID string     `json:"sessionId"`
	Number    int        `json:"number"`
	Total     int        `json:"total"`
	Question  string     `json:"question"`
	Slots     []SlotView `json:"slots"`
}

// AnswerResult summarizes one slot submission.
type AnswerResult struct {
	Slot    SlotView `json:"slot"`
	Correct bool     `json:"correct"`
	Awarded int      `json:"awarded"`
	Points  int      `json:"points"`
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Points   int    `json:"points"`
	Current  bool   `json:"current"`
}

// Leaderboard is the ranked projection of the user store.
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
	Notice  string             `json:"notice,omitempty"`
}
