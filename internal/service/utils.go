package service

import (
	"math"
	"strings"
)

// sanitizeLabel trims s and drops invalid UTF-8 so raw export labels can be
// stored as text.
func sanitizeLabel(s string) string {
	return strings.ToValidUTF8(strings.TrimSpace(s), "")
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

