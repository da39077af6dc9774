package externalaxis

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidAxisLogic is returned when an axis logic token is not one of -1..5, a..f or A..F.
	ErrInvalidAxisLogic = errors.New("invalid axis logic")

	// ErrInvalidAxis is returned by Validate for an external axis with unset planes or bad limits.
	ErrInvalidAxis = errors.New("invalid external axis")

	// ErrUnknownKind is returned when a config names an axis kind other than linear or rotational.
	ErrUnknownKind = errors.New("unknown external axis kind")
)

// NewInvalidAxisLogicError is used when a token cannot be parsed as an axis logic number.
func NewInvalidAxisLogicError(token string) error {
	return errors.Wrapf(ErrInvalidAxisLogic, "%q is not one of -1..5 or a..f", token)
}
