package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrUnknownModel indicates a model identifier outside the catalog.
	ErrUnknownModel = errors.New("dynamo: unknown model")

	// ErrDimensionMismatch indicates a state vector whose length differs from the model dims.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and model")

	// ErrTooManySteps indicates a horizon and step size whose step count cannot be allocated.
	ErrTooManySteps = errors.New("dynamo: too many steps")
)
