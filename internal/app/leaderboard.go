package app

import (
	"cmp"
	"context"
	"iter"
	"log"
	"slices"

	"trivia-quiz/internal/domain"
)

// Rank yields users by points descending, keeping store order among ties.
// The input is never modified; every range over the sequence sorts afresh.
func Rank(users []domain.User) iter.Seq[domain.User] {
	return func(yield func(domain.User) bool) {
		sorted := slices.Clone(users)
		slices.SortStableFunc(sorted, func(a, b domain.User) int {
			return cmp.Compare(b.Points, a.Points)
		})
		for _, u := range sorted {
			if !yield(u) {
				return
			}
		}
	}
}

// LeaderboardService projects the user store into a ranked board.
type LeaderboardService struct {
	users UserRepository
}

func NewLeaderboardService(users UserRepository) *LeaderboardService {
	return &LeaderboardService{users: users}
}

// Leaderboard ranks every user and flags the row of current.
// An unreadable store yields an empty board with a notice.
func (s *LeaderboardService) Leaderboard(ctx context.Context, current string) domain.Leaderboard {
	users, err := s.users.List(ctx)
	if err != nil {
		log.Printf("load leaderboard: %v", err)
		return domain.Leaderboard{Entries: []domain.LeaderboardEntry{}, Notice: domain.NoticeStoreMissing}
	}

	board := domain.Leaderboard{Entries: make([]domain.LeaderboardEntry, 0, len(users))}
	for u := range Rank(users) {
		board.Entries = append(board.Entries, domain.LeaderboardEntry{
			Rank:     len(board.Entries) + 1,
			Username: u.Username,
			Points:   u.Points,
			Current:  current != "" && u.Username == current,
		})
	}
	return board
}
