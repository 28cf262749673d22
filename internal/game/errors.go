package game

import "errors"

// Rejection errors surfaced to clients. Every validation failure maps to one
// of these; none of them mutates state.
var (
	ErrInsufficientPoints   = errors.New("insufficient points")
	ErrOccupiedCell         = errors.New("cell is already occupied")
	ErrOutOfFrontlineZone   = errors.New("cell is outside the frontline zone")
	ErrNoPieceAt            = errors.New("no piece at cell")
	ErrIllegalDestination   = errors.New("illegal destination")
	ErrNotYourPiece         = errors.New("piece belongs to another player")
	ErrGameAlreadyOver      = errors.New("game is already over")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrUnknownPieceType     = errors.New("unknown piece type")
	ErrUnknownBehavior      = errors.New("unknown behavior")
	ErrOutOfBounds          = errors.New("cell is out of bounds")
)
