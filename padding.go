package rood

import "strings"

// PadUnit is the padding rendered for a single indentation level.
const PadUnit = "|   "

// Padding returns the left padding for the given indentation depth:
// depth repetitions of PadUnit. Depths below 1 render no padding.
func Padding(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat(PadUnit, depth)
}
