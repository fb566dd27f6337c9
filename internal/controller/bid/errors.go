package bid

import "errors"

var (
	// ErrDuplicateApplication is returned when the user already has a bid on the job
	ErrDuplicateApplication = errors.New("You have already applied for the job")
	// ErrJobNotFound is returned when the bid references a job that doesn't exist
	ErrJobNotFound = errors.New("job not found")
)

// uniqueViolation is the postgres SQLSTATE for a unique constraint violation
const uniqueViolation = "23505"
