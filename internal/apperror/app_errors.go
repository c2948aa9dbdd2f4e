package apperror

import "errors"

var (
	ErrGameFinished         = errors.New("game is already finished")
	ErrInvalidCell          = errors.New("invalid cell index")
	ErrNotANumber           = errors.New("move is not a number")
	ErrMissingCredential    = errors.New("missing credential")
	ErrUnknownPlayerKind    = errors.New("unknown player kind")
	ErrTransportUnavailable = errors.New("chat transport unavailable")
	ErrInputClosed          = errors.New("input stream closed")
)
