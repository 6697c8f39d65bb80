// Package compare computes pairwise comparisons between dirty and
// clean result groups: quadrant tables, paired statistical tests, and
// relative differences against the dirty baseline.
package compare

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"cleanml/internal/errors"
)

// Outcome is the result of comparing two metric groups. HasP is set by
// methods producing a significance value alongside the statistic.
type Outcome struct {
	Stat float64
	P    float64
	HasP bool
}

// Method compares two ordered metric groups. Exactly two production
// implementations exist: a paired t-test and a relative difference.
type Method interface {
	Name() string
	Compare(a, b []float64) (Outcome, error)
}

// PairedTTest compares paired observations. Both groups are truncated
// to the shorter length, trailing elements of the longer one silently
// dropped; that asymmetry is part of the contract, not an accident.
type PairedTTest struct{}

func (PairedTTest) Name() string { return "t_test" }

func (PairedTTest) Compare(a, b []float64) (Outcome, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return Outcome{}, errors.DegenerateComparison("paired t-test needs at least 2 pairs, got %d", n)
	}
	diffs := make([]float64, n)
	for i := 0; i < n; i++ {
		diffs[i] = a[i] - b[i]
	}
	mean := stat.Mean(diffs, nil)
	sd := stat.StdDev(diffs, nil)
	if sd == 0 {
		return Outcome{}, errors.DegenerateComparison("paired t-test with zero variance over %d pairs", n)
	}
	t := mean / (sd / math.Sqrt(float64(n)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	p := 2 * dist.CDF(-math.Abs(t))
	return Outcome{Stat: t, P: p, HasP: true}, nil
}

// RelativeDifference compares group means as the relative change of b
// versus a: (mean(b) - mean(a)) / mean(a).
type RelativeDifference struct{}

func (RelativeDifference) Name() string { return "relative_difference" }

func (RelativeDifference) Compare(a, b []float64) (Outcome, error) {
	ma, err := stats.Mean(a)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "relative difference over empty baseline group")
	}
	mb, err := stats.Mean(b)
	if err != nil {
		return Outcome{}, errors.Wrap(err, "relative difference over empty comparison group")
	}
	if ma == 0 {
		return Outcome{}, errors.DegenerateComparison("relative difference against a zero baseline")
	}
	return Outcome{Stat: (mb - ma) / ma, P: math.NaN()}, nil
}
