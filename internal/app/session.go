package app

import (
	"html"
	"math/rand"
	"sync"
	"time"

	"trivia-quiz/internal/domain"
)

const (
	// QuestionsPerQuiz caps how many questions one session presents.
	QuestionsPerQuiz = 10
	// PointsPerCorrect is awarded for each correct answer.
	PointsPerCorrect = 10

	slotCount = 4
)

// SessionState is the coarse state of a quiz session.
type SessionState string

const (
	StateAwaitingQuestion SessionState = "awaiting_question"
	StateExhausted        SessionState = "exhausted"
)

type slot struct {
	text  string
	state domain.SlotState
}

// Session is the progression state of one quiz attempt.
type Session struct {
	id        string
	username  string
	questions []domain.Question
	palette   domain.Palette
	rnd       *rand.Rand
	now       func() time.Time

	mu          sync.Mutex
	index       int
	active      bool
	exhausted   bool
	prompt      string
	correct     string
	correctSlot int
	slots       [slotCount]slot
	updatedAt   time.Time
}

// NewSession builds a session over at most QuestionsPerQuiz questions.
// Questions that do not carry exactly three distinct incorrect answers are dropped.
func NewSession(id, username string, questions []domain.Question, palette domain.Palette) *Session {
	return NewSessionWithRand(id, username, questions, palette, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSessionWithRand allows deterministic shuffling in tests.
func NewSessionWithRand(id, username string, questions []domain.Question, palette domain.Palette, rnd *rand.Rand) *Session {
	s := &Session{
		id:        id,
		username:  username,
		questions: usableQuestions(questions),
		palette:   palette,
		rnd:       rnd,
		now:       time.Now,
	}
	s.updatedAt = s.now()
	return s
}

func usableQuestions(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, 0, QuestionsPerQuiz)
	for _, q := range questions {
		if len(out) == QuestionsPerQuiz {
			break
		}
		if len(q.IncorrectAnswers) != slotCount-1 {
			continue
		}
		seen := map[string]bool{html.UnescapeString(q.CorrectAnswer): true}
		ok := true
		for _, a := range q.IncorrectAnswers {
			a = html.UnescapeString(a)
			if seen[a] {
				ok = false
				break
			}
			seen[a] = true
		}
		if ok {
			out = append(out, q)
		}
	}
	return out
}

// ID is the session id handed to the client.
func (s *Session) ID() string { return s.id }

// Username is the player credited for correct answers.
func (s *Session) Username() string { return s.username }

// Len reports how many questions the session will present.
func (s *Session) Len() int { return len(s.questions) }

// Index is the number of questions presented so far.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// State reports whether the session still has questions to present.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.exhausted {
		return StateExhausted
	}
	return StateAwaitingQuestion
}

// CorrectSlot returns the slot id holding the active question's correct answer, or 0.
func (s *Session) CorrectSlot() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return 0
	}
	return s.correctSlot
}

// Advance presents the next question with freshly shuffled answer slots.
// Once every question was presented it returns domain.ErrSessionExhausted and
// the session stays exhausted.
func (s *Session) Advance() (domain.QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updatedAt = s.now()
	if s.index >= len(s.questions) {
		s.exhausted = true
		s.active = false
		return domain.QuestionView{}, domain.ErrSessionExhausted
	}

	q := s.questions[s.index]
	correct := html.UnescapeString(q.CorrectAnswer)
	candidates := make([]string, 0, slotCount)
	for _, a := range q.IncorrectAnswers {
		candidates = append(candidates, html.UnescapeString(a))
	}
	candidates = append(candidates, correct)

	s.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	positions := s.rnd.Perm(slotCount)
	for i, text := range candidates {
		pos := positions[i]
		s.slots[pos] = slot{text: text, state: domain.SlotInteractive}
		if text == correct {
			s.correctSlot = pos + 1
		}
	}

	s.prompt = html.UnescapeString(q.Question)
	s.correct = correct
	s.active = true
	s.index++
	return s.viewLocked(), nil
}

// Submit checks the answer bound to slotID. A correct answer is reported with
// Awarded set; the caller owns persisting it. Marked slots are inert.
func (s *Session) Submit(slotID int) (domain.AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return domain.AnswerResult{}, domain.ErrNoActiveQuestion
	}
	if slotID < 1 || slotID > slotCount {
		return domain.AnswerResult{}, domain.ErrSlotNotFound
	}
	sl := &s.slots[slotID-1]
	if sl.state != domain.SlotInteractive {
		return domain.AnswerResult{}, domain.ErrSlotLocked
	}

	s.updatedAt = s.now()
	result := domain.AnswerResult{}
	if sl.text == s.correct {
		sl.state = domain.SlotCorrect
		result.Correct = true
		result.Awarded = PointsPerCorrect
	} else {
		sl.state = domain.SlotIncorrect
	}
	result.Slot = s.slotViewLocked(slotID)
	return result, nil
}

// View returns the active question as it currently renders.
func (s *Session) View() (domain.QuestionView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return domain.QuestionView{}, false
	}
	return s.viewLocked(), true
}

func (s *Session) viewLocked() domain.QuestionView {
	view := domain.QuestionView{
		SessionID: s.id,
		Number:    s.index,
		Total:     len(s.questions),
		Question:  s.prompt,
		Slots:     make([]domain.SlotView, 0, slotCount),
	}
	for id := 1; id <= slotCount; id++ {
		view.Slots = append(view.Slots, s.slotViewLocked(id))
	}
	return view
}

func (s *Session) slotViewLocked(id int) domain.SlotView {
	sl := s.slots[id-1]
	return domain.SlotView{
		ID:       id,
		Text:     sl.text,
		State:    sl.state,
		Color:    s.palette.Color(sl.state),
		Disabled: sl.state != domain.SlotInteractive,
	}
}

// SessionSnapshot is the serializable form of a Session.
type SessionSnapshot struct {
	ID          string            `json:"id"`
	Username    string            `json:"username"`
	Questions   []domain.Question `json:"questions"`
	Palette     domain.Palette    `json:"palette"`
	Index       int               `json:"index"`
	Active      bool              `json:"active"`
	Exhausted   bool              `json:"exhausted"`
	Prompt      string            `json:"prompt"`
	Correct     string            `json:"correct"`
	CorrectSlot int               `json:"correctSlot"`
	Slots       []SlotSnapshot    `json:"slots"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// SlotSnapshot is the serializable form of one answer slot.
type SlotSnapshot struct {
	Text  string           `json:"text"`
	State domain.SlotState `json:"state"`
}

// Snapshot captures the session for storage outside the process.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := SessionSnapshot{
		ID:          s.id,
		Username:    s.username,
		Questions:   s.questions,
		Palette:     s.palette,
		Index:       s.index,
		Active:      s.active,
		Exhausted:   s.exhausted,
		Prompt:      s.prompt,
		Correct:     s.correct,
		CorrectSlot: s.correctSlot,
		Slots:       make([]SlotSnapshot, 0, slotCount),
		UpdatedAt:   s.updatedAt,
	}
	for _, sl := range s.slots {
		snap.Slots = append(snap.Slots, SlotSnapshot{Text: sl.text, State: sl.state})
	}
	return snap
}

// RestoreSession rebuilds a session from a snapshot.
func RestoreSession(snap SessionSnapshot) *Session {
	s := &Session{
		id:          snap.ID,
		username:    snap.Username,
		questions:   snap.Questions,
		palette:     snap.Palette,
		rnd:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
		index:       snap.Index,
		active:      snap.Active,
		exhausted:   snap.Exhausted,
		prompt:      snap.Prompt,
		correct:     snap.Correct,
		correctSlot: snap.CorrectSlot,
		updatedAt:   snap.UpdatedAt,
	}
	for i := 0; i < slotCount && i < len(snap.Slots); i++ {
		s.slots[i] = slot{text: snap.Slots[i].Text, state: snap.Slots[i].State}
	}
	return s
}
