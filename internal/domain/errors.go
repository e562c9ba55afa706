package domain

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrChefNotFound           = errors.New("chef not found")
	ErrPreferencesNotFound    = errors.New("preferences not found")
	ErrMealNotImplemented     = errors.New("meal recommendations not yet implemented")
	ErrUnsupportedContentType = errors.New("unsupported content type")
)
