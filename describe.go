package spending

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics of the non-missing values of a numeric column
type Summary struct {
	Name    string
	N       int
	Missing int

	Min    float64
	Q25    float64
	Median float64
	Mean   float64
	Q75    float64
	Max    float64
	StdDev float64
}

// Describe summarizes a DTfloat or DTint column. Missing values are counted, not used.
func Describe(c *Col) (*Summary, error) {
	if c.DataType() != DTfloat && c.DataType() != DTint {
		return nil, fmt.Errorf("cannot describe column %s of type %s", c.Name(), c.DataType())
	}

	var (
		xs []float64
		e  error
	)
	if xs, e = c.AsFloat(); e != nil {
		return nil, e
	}

	s := &Summary{Name: c.Name()}
	x := make([]float64, 0, len(xs))
	for ind, xv := range xs {
		if c.IsNA(ind) {
			s.Missing++
			continue
		}

		x = append(x, xv)
	}

	s.N = len(x)
	if s.N == 0 {
		s.Min, s.Q25, s.Median, s.Mean, s.Q75, s.Max, s.StdDev =
			math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s, nil
	}

	sort.Float64s(x)
	s.Min = x[0]
	s.Max = x[len(x)-1]
	s.Q25 = stat.Quantile(0.25, stat.Empirical, x, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, x, nil)
	s.Q75 = stat.Quantile(0.75, stat.Empirical, x, nil)
	s.Mean = stat.Mean(x, nil)
	s.StdDev = math.NaN()
	if s.N > 1 {
		s.StdDev = stat.StdDev(x, nil)
	}

	return s, nil
}

func (s *Summary) String() string {
	cats := []string{"min", "lq", "median", "mean", "uq", "max", "std dev", "n", "missing"}
	stats := []float64{s.Min, s.Q25, s.Median, s.Mean, s.Q75, s.Max, s.StdDev}

	format := selectFormat(stats)
	var vals []string
	for _, x := range stats {
		vals = append(vals, fmt.Sprintf(format, x))
	}

	vals = append(vals, fmt.Sprintf("%d", s.N), fmt.Sprintf("%d", s.Missing))
	header := []string{"metric", s.Name}

	return prettyPrint(header, cats, vals)
}
