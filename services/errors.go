package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrPollNotOpen         = errors.New("poll is not open for voting")
	ErrPollAlreadyOpen     = errors.New("tournament already has an open poll")
	ErrPlayerBanned        = errors.New("player is banned from tournaments")
	ErrTeamsAlreadyCreated = errors.New("teams have already been created for this tournament")
	ErrTeamsNotGenerated   = errors.New("teams have not been generated for this tournament")
	ErrWinnersDeclared     = errors.New("winners have already been declared for this tournament")
	ErrNoMatchResults      = errors.New("no match results recorded for this tournament")
	ErrEmptyComposition    = errors.New("team composition is empty")
	ErrCompositionConflict = errors.New("composition references a player outside the tournament pools")
	ErrTournamentNotActive = errors.New("tournament is not active")

	// Conflicts
	ErrUserEmailConflict = errors.New("email address is already in use")
	ErrIGNConflict       = errors.New("in-game name is already in use")
	ErrPositionTaken     = errors.New("finishing position already recorded for this match")

	// Authentication and authorization
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Entity-specific lookups
	ErrUserNotFound       = errors.New("user not found")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPollNotFound       = errors.New("poll not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrSoloPoolNotFound   = errors.New("solo support pool not found")
)
