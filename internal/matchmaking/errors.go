package matchmaking

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidState        = errors.New("invalid state")
	ErrConflict            = errors.New("conflict")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrInsufficientPlayers = errors.New("insufficient players")
	ErrInvalidArity        = errors.New("invalid arity")
	ErrInvalidArgument     = errors.New("invalid argument")
)

// Stable error codes exposed to API clients.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidState        = "INVALID_STATE"
	CodeConflict            = "CONFLICT"
	CodePreconditionFailed  = "PRECONDITION_FAILED"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeInvalidArity        = "INVALID_ARITY"
	CodeInvalidArgument     = "INVALID_ARGUMENT"
	CodeInternal            = "INTERNAL"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrNotFound, CodeNotFound},
	{ErrInvalidState, CodeInvalidState},
	{ErrConflict, CodeConflict},
	{ErrPreconditionFailed, CodePreconditionFailed},
	{ErrInsufficientPlayers, CodeInsufficientPlayers},
	{ErrInvalidArity, CodeInvalidArity},
	{ErrInvalidArgument, CodeInvalidArgument},
}

// ErrorCode returns the stable code for err, or CodeInternal when err is not
// one of the engine's typed failures.
func ErrorCode(err error) string {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return CodeInternal
}
