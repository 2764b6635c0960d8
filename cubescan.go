// Package cubescan turns the 54 color samples read from a 3x3 cube into a
// facelet notation that a solver will accept.
//
// # Pipeline
//
// Resolve runs every stage in order:
//
//   - Classify: each edge and corner sample is labelled with the face of
//     the nearest centre sample, four edge and four corner facelets per face
//   - Validate: corner and edge color sets are checked against the legal
//     pieces
//   - Verify: the notation is decomposed into pieces and checked for twist,
//     flip and parity
//   - Repair: an invalid or unsolvable notation is searched for the closest
//     solvable relabeling
//
// # Quick Start
//
//	samples, err := scan.ImportFile("scan.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	r, err := cubescan.New(cubescan.WithColorSpace(colorpoint.HSV, 255))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := r.Resolve(ctx, samples)
//	if errors.Is(err, cubescan.ErrRepairExhausted) {
//	    // res.Notation is the best effort labeling, fix it by hand.
//	}
//	fmt.Println(res.Notation)
//
// # Notation
//
// Positions follow the URFDLB convention: U occupies 0-8, R 9-17, F 18-26,
// D 27-35, L 36-44 and B 45-53, each face read row by row. A solved cube
// reads
//
//	UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB
package cubescan

import (
	"github.com/SeamusWaldron/cubescan/internal/classify"
	"github.com/SeamusWaldron/cubescan/internal/colorpoint"
	"github.com/SeamusWaldron/cubescan/internal/facelet"
	"github.com/SeamusWaldron/cubescan/internal/fixer"
	"github.com/SeamusWaldron/cubescan/pkg/types"
)

type (
	// Arena holds one color sample per facelet.
	Arena = colorpoint.Arena
	// ColorPoint is one color sample.
	ColorPoint = colorpoint.ColorPoint
	// Metric is the distance used to compare samples.
	Metric = colorpoint.Metric
	// Notation is a 54 symbol face labeling.
	Notation = facelet.Notation
	// Report lists the corner, edge and count problems of a notation.
	Report = facelet.Report
	// Summary describes how samples were classified.
	Summary = classify.Summary
	// FixResult is the outcome of a repair.
	FixResult = fixer.Result
	// FixerConfig tunes the repair search.
	FixerConfig = fixer.Config
	// Move is a single face turn.
	Move = types.Move
)

// ParseNotation reads a 54 character notation.
func ParseNotation(s string) (Notation, error) {
	return facelet.ParseNotation(s)
}

// Validate checks the corner and edge groups and face counts of n.
func Validate(n Notation) Report {
	return facelet.Validate(n)
}
