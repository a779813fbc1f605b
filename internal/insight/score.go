package insight

import (
	"regexp"
	"strconv"
)

var scorePattern = regexp.MustCompile(`(\d{1,3})\s*%`)

// ExtractScore scans free text for the first 1-to-3-digit number followed
// by a percent sign and parses it. Absence of the pattern yields 0. The
// raw value is returned unclamped; callers bound it via ClampScore.
func ExtractScore(text string) int {
	m := scorePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return score
}

// ClampScore bounds a parsed confidence score to [0, 100]. The percent
// pattern admits values up to 999, and nothing stops a model from
// emitting one.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
