package domain

import "errors"

var (
	ErrActiveRequest     = errors.New("active request exists")
	ErrPlaybackActive    = errors.New("playback already active")
	ErrSessionNotFound   = errors.New("session not found")
	ErrMessageNotFound   = errors.New("message not found")
	ErrNoAttachment      = errors.New("no attachment")
	ErrEmptySubmission   = errors.New("empty submission")
	ErrUnknownLanguage   = errors.New("unknown language")
	ErrInvalidDataURI    = errors.New("invalid data uri")
	ErrMissingCredential = errors.New("missing api credential")
	ErrSettingsNotFound  = errors.New("settings not found")
)
