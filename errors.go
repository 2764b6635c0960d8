package cubescan

import (
	"errors"

	"github.com/SeamusWaldron/cubescan/internal/classify"
	"github.com/SeamusWaldron/cubescan/internal/fixer"
	"github.com/SeamusWaldron/cubescan/internal/oracle"
	"github.com/SeamusWaldron/cubescan/internal/scan"
)

// Sentinel errors for the cubescan package.
var (
	// Input errors
	ErrMalformedScan    = scan.ErrMalformedScan
	ErrCapacityMismatch = classify.ErrCapacityMismatch

	// Recoverable errors, routed to the repairer
	ErrInvalidNotation = errors.New("cubescan: notation has illegal or duplicate pieces")
	ErrUnsolvable      = oracle.ErrUnsolvable

	// Soft failure: the best effort notation is still returned
	ErrRepairExhausted = fixer.ErrRepairExhausted
)
