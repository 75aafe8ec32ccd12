package model

import "strings"

// ScaleName identifies an ordered categorical scale. Conditions with a scale
// compare the rank of the profile value on that scale instead of the raw text.
type ScaleName string

const (
	ScaleNone    ScaleName = ""
	ScaleGrade   ScaleName = "grade"
	ScaleEnglish ScaleName = "english"
)

// Ranks are ascending: a higher index is a better result.
var (
	gradeOrder   = []string{"G", "E", "D", "C", "C+", "B", "B+", "A-", "A", "A+"}
	englishOrder = []string{"Beginner", "Intermediate", "Advanced"}
)

// Rank returns the position of value on the named scale. ok is false for an
// unknown scale or a value not on it.
func Rank(scale ScaleName, value string) (float64, bool) {
	var order []string
	switch scale {
	case ScaleGrade:
		order = gradeOrder
	case ScaleEnglish:
		order = englishOrder
	default:
		return 0, false
	}
	for i, v := range order {
		if strings.EqualFold(v, value) {
			return float64(i), true
		}
	}
	return 0, false
}

// KnownScale reports whether name is a registered scale.
func KnownScale(name ScaleName) bool {
	return name == ScaleGrade || name == ScaleEnglish
}
