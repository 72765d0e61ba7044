package game

import "errors"

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrMalformedIntent = errors.New("malformed intent")
	ErrUnknownIntent   = errors.New("unknown intent type")
	ErrMissingUsername = errors.New("missing username")
	ErrMissingUserID   = errors.New("missing userID")
	ErrUnknownTeam     = errors.New("unknown team label")
)
