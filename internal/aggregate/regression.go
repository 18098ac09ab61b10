package aggregate

import (
	"errors"
	"math"

	"github.com/KaramelBytes/vaxviz-cli/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewPoints means fewer than two complete points were available.
	ErrTooFewPoints = errors.New("regression needs at least 2 points")
	// ErrNoVariance means every point shares the same x value.
	ErrNoVariance = errors.New("regression x values have zero variance")
)

// Point is one scatter observation: x = GDP per capita, y = observation value.
type Point struct {
	CountryCode string
	TimePeriod  int
	X, Y        float64
}

// Fit is an ordinary least squares line y = Intercept + Slope*x.
type Fit struct {
	Intercept float64
	Slope     float64
	RSquared  float64
	N         int
	MinX      float64
	MaxX      float64
}

// At evaluates the fitted line.
func (f Fit) At(x float64) float64 { return f.Intercept + f.Slope*x }

// ScatterSummary holds the plotted points and the trend line fitted to them.
// Fit is nil when the regression is undefined; FitErr says why.
type ScatterSummary struct {
	Points []Point
	Fit    *Fit
	FitErr error
}

// Scatter collects every row with both GDP per capita and an observation
// value, and fits an OLS line over the same points.
func Scatter(rows []dataset.MergedRecord) ScatterSummary {
	var s ScatterSummary
	for _, r := range rows {
		if r.GDPPerCapita == nil || r.ObsValue == nil {
			continue
		}
		s.Points = append(s.Points, Point{
			CountryCode: r.CountryCode,
			TimePeriod:  r.TimePeriod,
			X:           *r.GDPPerCapita,
			Y:           *r.ObsValue,
		})
	}
	fit, err := OLS(s.Points)
	if err != nil {
		s.FitErr = err
		return s
	}
	s.Fit = &fit
	return s
}

// OLS fits y on x by ordinary least squares.
func OLS(points []Point) (Fit, error) {
	if len(points) < 2 {
		return Fit{}, ErrTooFewPoints
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	minX, maxX := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	if minX == maxX {
		return Fit{}, ErrNoVariance
	}
	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// constant y: the line explains nothing but is still defined
		r2 = 0
	}
	return Fit{Intercept: alpha, Slope: beta, RSquared: r2, N: len(points), MinX: minX, MaxX: maxX}, nil
}
