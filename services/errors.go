package services

import "errors"

// Shared errors used across services and the HTTP mapping layer.
var (
	// Generic not-found
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed   = errors.New("validation failed")
	ErrNicknameRequired   = errors.New("nickname is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrNegativeScore      = errors.New("guess scores must be non-negative")
	ErrMatchSameTeam      = errors.New("a team cannot play against itself")
	ErrMatchScorePair     = errors.New("match scores must be set together or not at all")
	ErrMatchInvalidRound  = errors.New("match round must be positive")
	ErrGroupNameRequired  = errors.New("group name is required")
	ErrGroupPrivate       = errors.New("cannot join a private group")
	ErrAlreadyGroupMember = errors.New("user is already a member of the group")
	ErrNotGroupMember     = errors.New("user is not a member of the group")

	// Conflicts
	ErrNicknameConflict   = errors.New("nickname is already in use")
	ErrTeamNameConflict   = errors.New("team name is already in use")
	ErrMatchRoundConflict = errors.New("one of the teams already has a match in this round")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid nickname or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrOnlyCreatorCanDelete   = errors.New("only the group creator can delete the group")

	// Guesses are frozen once a match leaves PENDING. Distinct from
	// not-found: the resource exists, the lifecycle state forbids the write.
	ErrGuessesLocked = errors.New("guesses are not allowed after the match has started")

	// Entity-specific not-found
	ErrUserNotFound  = errors.New("user not found")
	ErrTeamNotFound  = errors.New("team not found")
	ErrMatchNotFound = errors.New("match not found")
	ErrGuessNotFound = errors.New("guess not found")
	ErrGroupNotFound = errors.New("group not found")
)
