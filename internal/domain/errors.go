package domain

import "errors"

var (
	// ErrSetNotFound is returned by loaders when no question set exists for a category/difficulty pair.
	ErrSetNotFound = errors.New("question set not found")
	// ErrNoQuestions indicates that no questions are available, even after falling back to the default set.
	ErrNoQuestions = errors.New("no questions available for selected category/difficulty")
	// ErrInvalidQuestion indicates malformed question content (too few options, bad correct index).
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrInvalidOption indicates a selected option index outside the question's options.
	ErrInvalidOption = errors.New("option not found")
	// ErrNotActive is returned when an intent arrives while no quiz is in progress.
	ErrNotActive = errors.New("quiz is not in progress")
	// ErrNotStarted is returned by restart before any quiz has been started.
	ErrNotStarted = errors.New("quiz has not been started")
	// ErrAttemptNotFound is returned when an attempt ID is unknown.
	ErrAttemptNotFound = errors.New("attempt not found")
)
