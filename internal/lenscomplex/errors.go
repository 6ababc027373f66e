package lenscomplex

import (
	"errors"
	"fmt"
)

var (
	// ErrTopologyInconsistency reports malformed adjacency: a face whose inner cell does not
	// have exactly one vertex off the face, or a chain that cannot be extracted.
	ErrTopologyInconsistency = errors.New("topology inconsistency")
	// ErrImagingDegenerate reports a conjugate-point mapping that is mathematically undefined.
	ErrImagingDegenerate = errors.New("imaging degenerate")
	// ErrChainUnreachable reports a walk to the exterior that does not terminate within the
	// face-count bound (cycle or disconnection).
	ErrChainUnreachable = errors.New("chain unreachable")

	ErrNotCalibrated     = errors.New("complex is not calibrated")
	ErrAlreadyCalibrated = errors.New("complex is already calibrated")
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrInconsistent      = errors.New("calibration inconsistent")
)

// Stage names the calibration step a FaceError was raised in.
type Stage uint8

const (
	StageInnerVertex Stage = iota
	StageChain
	StageTarget
	StageElement
)

func (s Stage) String() string {
	switch s {
	case StageInnerVertex:
		return "inner vertex"
	case StageChain:
		return "chain"
	case StageTarget:
		return "target"
	case StageElement:
		return "element"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// FaceError attaches the face index and stage to a calibration failure.
type FaceError struct {
	Face  int
	Stage Stage
	Err   error
}

func (e *FaceError) Error() string {
	return fmt.Sprintf("face %d: %s: %v", e.Face, e.Stage, e.Err)
}

func (e *FaceError) Unwrap() error { return e.Err }
