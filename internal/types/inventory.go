package types

import (
	ierr "github.com/gestia/gestia/internal/errors"
)

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementTypeIn     MovementType = "in"
	MovementTypeOut    MovementType = "out"
	MovementTypeAdjust MovementType = "adjust"
)

func (t MovementType) String() string {
	return string(t)
}

func (t MovementType) Validate() error {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjust:
		return nil
	}
	return ierr.NewError("invalid movement type").
		WithHintf("Movement type '%s' is not supported", t).
		Mark(ierr.ErrValidation)
}
