package usecase

import "errors"

var (
	ErrInternal     = errors.New("Internal server error")
	ErrUnauthorized = errors.New("Unauthorized")
	ErrForbidden    = errors.New("Forbidden")

	ErrJobNotFound     = errors.New("Job not found")
	ErrSkillNotFound   = errors.New("Skill not found")
	ErrAttemptNotFound = errors.New("Assessment attempt not found")

	ErrNoQuestions  = errors.New("No questions available for this skill")
	ErrStaleAttempt = errors.New("Assessment attempt already completed")
	ErrInvalidInput = errors.New("Invalid request payload")
)
