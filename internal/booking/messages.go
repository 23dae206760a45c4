package booking

import (
	"errors"

	"medibook/internal/store"
)

// UserMessage maps a core error to the text a screen shows. Every error in
// the taxonomy is recoverable; none should crash the app.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, ErrValidation) {
		return "Please fill in all the appointment fields before submitting."
	}

	if errors.Is(err, ErrNotFound) {
		return "This appointment no longer exists. Pull to refresh your list."
	}

	if errors.Is(err, ErrInvalidTransition) {
		return "This appointment was already updated. Pull to refresh your list."
	}

	if errors.Is(err, ErrRateLimited) {
		return "Your request was already submitted. Please wait a moment."
	}

	if errors.Is(err, store.ErrKeyNotFound) {
		return "Nothing saved yet."
	}

	return "Something went wrong while saving. Your appointments were not changed, please try again."
}
