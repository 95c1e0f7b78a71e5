package models

import (
	"errors"
	"fmt"
)

// Error kinds shared by every pipeline stage. Match them with errors.Is.
var (
	// ErrInvalidInput reports degenerate image dimensions or too few samples
	ErrInvalidInput = errors.New("imagepca: invalid input")

	// ErrDimensionMismatch reports incompatible matrix shapes
	ErrDimensionMismatch = errors.New("imagepca: dimension mismatch")

	// ErrNumericalFailure reports solver non-convergence or a NaN/Inf value
	ErrNumericalFailure = errors.New("imagepca: numerical failure")
)

// Stage identifies one step of the PCA pipeline
type Stage int

const (
	StageExtract Stage = iota
	StageCenter
	StageCovariance
	StageEigen
	StageProject
	StageReconstruct
)

func (s Stage) String() string {
	switch s {
	case StageExtract:
		return "extract"
	case StageCenter:
		return "center"
	case StageCovariance:
		return "covariance"
	case StageEigen:
		return "eigendecompose"
	case StageProject:
		return "project"
	case StageReconstruct:
		return "reconstruct"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// StageError ties a failure to the pipeline stage that produced it
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
