package dataset

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// nullTokens are cell values treated as missing.
var nullTokens = []string{"", "NA", "N/A", "NaN", "nan", "..", "<nil>"}

var (
	errNotNumber  = errors.New("not a number")
	errNotYear    = errors.New("not an integer year")
	errNotFinite  = errors.New("non-finite number")
	errMissingKey = errors.New("missing join key")
)

func isNull(s string) bool {
	s = strings.TrimSpace(s)
	for _, tok := range nullTokens {
		if s == tok {
			return true
		}
	}
	return false
}

// parseNumber parses a numeric cell. Missing cells yield (nil, nil).
// A trailing percent sign and non-breaking spaces are tolerated.
func parseNumber(s string) (*float64, error) {
	if isNull(s) {
		return nil, nil
	}
	raw := strings.ReplaceAll(s, "\u00a0", " ")
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errNotNumber
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, errNotFinite
	}
	return &f, nil
}

// parseYear parses a time period. Integral floats such as "2019.0" are accepted.
func parseYear(s string) (int, error) {
	raw := strings.TrimSpace(s)
	if raw == "" || isNull(raw) {
		return 0, errMissingKey
	}
	if y, err := strconv.Atoi(raw); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errNotYear
	}
	return int(f), nil
}
