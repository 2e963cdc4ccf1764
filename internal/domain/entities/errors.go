package entities

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrSpeechNotFound   = errors.New("speech record not found")
	ErrAnalysisNotFound = errors.New("analysis not found")

	// ErrMembershipMismatch is returned when a speech record claims AU
	// membership inconsistent with the classifier's roster.
	ErrMembershipMismatch = errors.New("is_african_member flag inconsistent with AU roster")
)
