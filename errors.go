package flightpandas

import "errors"

// Error kinds surfaced by this package. Test with errors.Is; the errors
// actually returned wrap these with the offending key or parameter value.
var (
	ErrInvalidParameter   = errors.New("invalid parameter")
	ErrMissingColumn      = errors.New("missing column")
	ErrEmptyTrajectory    = errors.New("empty trajectory")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrUnknownKey         = errors.New("unknown flight key")
)
