package model

import "errors"

var (
	// ErrMemberNotFound indicates that no member matched the query.
	ErrMemberNotFound = errors.New("member not found")
	// ErrNonUniqueResult indicates that a single-result query matched more than one member.
	ErrNonUniqueResult = errors.New("query did not return a unique result")
	// ErrTransientTeam indicates that a member references a team that has not been saved yet.
	ErrTransientTeam = errors.New("member references an unsaved team")
	// ErrInvalidUsername indicates that the provided username is empty.
	ErrInvalidUsername = errors.New("invalid username")
	// ErrInvalidAge indicates that the provided age is negative.
	ErrInvalidAge = errors.New("invalid age")
	// ErrInvalidAgeRange indicates that the lower age bound exceeds the upper one.
	ErrInvalidAgeRange = errors.New("ageGoe must not be greater than ageLoe")
)
