package domain

import "errors"

var (
	// ErrValidation is returned when a form field is empty or fields disagree.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateUser is returned when signing up with a username that already exists.
	ErrDuplicateUser = errors.New("username already exists")
	// ErrNotFound is returned when a login lookup does not match any user.
	ErrNotFound = errors.New("user not found")
	// ErrStoreUnavailable indicates the user store is missing or corrupt.
	ErrStoreUnavailable = errors.New("user store unavailable")

	// ErrEmptyResult is the provider's "no results" response code.
	ErrEmptyResult = errors.New("no questions found for the given parameters")
	// ErrInvalidRequest is the provider's "invalid parameter" response code.
	ErrInvalidRequest = errors.New("invalid trivia request parameters")
	// ErrToken covers the provider's session token response codes.
	ErrToken = errors.New("trivia session token error")
	// ErrNoQuestions is returned when a quiz cannot start because no questions arrived.
	ErrNoQuestions = errors.New("no questions available")

	// ErrSessionNotFound is returned when a quiz session does not exist (or expired).
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrSessionExhausted signals that every question of the session was presented.
	ErrSessionExhausted = errors.New("out of questions")
	ErrNoActiveQuestion = errors.New("no active question")
	ErrSlotNotFound     = errors.New("answer slot not found")
	// ErrSlotLocked is returned when an already marked slot is submitted again.
	ErrSlotLocked = errors.New("answer slot already used")

	ErrInvalidTransition    = errors.New("invalid screen transition")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrUnauthenticated      = errors.New("not authenticated")
)
