package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrAccountDisabled     = errors.New("account disabled")
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseNotPublished  = errors.New("course not published")
	ErrModuleNotFound      = errors.New("module not found")
	ErrQuizNotFound        = errors.New("quiz not found")
	ErrQuizNotPublished    = errors.New("quiz not published")
	ErrQuizHasNoQuestions  = errors.New("quiz has no questions")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrSubjectNotFound     = errors.New("subject not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrNotEnrolled         = errors.New("not enrolled in course")
	ErrSlugTaken           = errors.New("slug already in use")
	ErrInvalidAnswerOption = errors.New("answer option must be A, B, C or D")
	ErrPostNotFound        = errors.New("blog post not found")
	ErrFAQNotFound         = errors.New("faq entry not found")
	ErrJobNotFound         = errors.New("job opening not found")
)
