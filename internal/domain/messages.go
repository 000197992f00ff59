package domain

import "errors"

// Notices shown by the presentation surface.
const (
	NoticeExhausted     = "Out of Questions! Please press Back to return to the home screen."
	NoticeQuitPrompt    = "Do you want to quit?"
	NoticeStoreMissing  = "Error: Users database not found!"
	NoticeTryAgainLater = "Error in the process of making the request!\n please try again later..."
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

// Invalid returns an error matching ErrValidation that carries a message for the user.
func Invalid(msg string) error {
	return &validationError{msg: msg}
}

// UserMessage renders err as the inline message a screen shows.
func UserMessage(err error) string {
	var ve *validationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.msg
	case errors.Is(err, ErrDuplicateUser):
		return "Username already exists"
	case errors.Is(err, ErrNotFound):
		return "error! user not found..."
	case errors.Is(err, ErrNoQuestions), errors.Is(err, ErrEmptyResult),
		errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrToken):
		return NoticeTryAgainLater
	case errors.Is(err, ErrSessionExhausted):
		return NoticeExhausted
	case errors.Is(err, ErrConfirmationRequired):
		return NoticeQuitPrompt
	case errors.Is(err, ErrStoreUnavailable):
		return "Could not save your data, please try again later"
	default:
		return err.Error()
	}
}
