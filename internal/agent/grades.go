package agent

import "math/rand"

// Grade is a letter grade recorded on a transcript.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// letterOrder is the fixed draw order for weighted grade selection.
var letterOrder = [5]Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

// Points returns the grade-point value used for GPA computation.
func (g Grade) Points() float64 {
	switch g {
	case GradeA:
		return 4.0
	case GradeB:
		return 3.0
	case GradeC:
		return 2.0
	case GradeD:
		return 1.0
	default:
		return 0.0
	}
}

// IsPassing reports whether the grade completes a course. Only F fails.
func (g Grade) IsPassing() bool {
	return g != GradeF
}

// GradeWeights holds the multipliers of the ability-driven grade
// distribution. For ability a, the raw weight of A and B is the
// multiplier times a, and of C, D, F the multiplier times (1-a), so
// higher ability shifts mass toward A/B and away from F.
type GradeWeights struct {
	A float64
	B float64
	C float64
	D float64
	F float64

	// Floor is the minimum raw weight per letter. It keeps the
	// distribution well-defined at the ability extremes, where some raw
	// weights would otherwise reach zero.
	Floor float64
}

// DefaultGradeWeights returns the recorded grade weight multipliers.
func DefaultGradeWeights() GradeWeights {
	return GradeWeights{
		A:     4.0,
		B:     2.5,
		C:     2.0,
		D:     1.5,
		F:     4.0,
		Floor: 0.01,
	}
}

// raw returns the five raw weights for the given ability, in
// letterOrder, each floored at w.Floor.
func (w GradeWeights) raw(ability float64) [5]float64 {
	weights := [5]float64{
		w.A * ability,
		w.B * ability,
		w.C * (1 - ability),
		w.D * (1 - ability),
		w.F * (1 - ability),
	}
	for i, v := range weights {
		if v < w.Floor {
			weights[i] = w.Floor
		}
	}
	return weights
}

// Draw selects a letter grade for the given ability using rng.
func (w GradeWeights) Draw(ability float64, rng *rand.Rand) Grade {
	weights := w.raw(ability)

	total := 0.0
	for _, v := range weights {
		total += v
	}

	x := rng.Float64() * total
	for i, v := range weights {
		x -= v
		if x < 0 {
			return letterOrder[i]
		}
	}
	return letterOrder[len(letterOrder)-1]
}
