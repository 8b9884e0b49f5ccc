package model

import "errors"

var (
	// ErrTeamExists is returned when the team name is already taken.
	ErrTeamExists = errors.New("team already exists")
	// ErrTeamNotFound is returned when no team has the requested id or name.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamName is returned for a blank team name.
	ErrInvalidTeamName = errors.New("invalid team name")
)
