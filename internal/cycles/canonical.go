package cycles

import "strings"

// CanonicalKey reduces a loop (the cycle path without the trailing return to
// the seed) to a rotation-invariant identifier: the sequence rotated to start
// at its lexicographically smallest symbol, joined with "->". Two cycles
// describe the same economic loop iff their keys are equal.
func CanonicalKey(loop []string) string {
	if len(loop) == 0 {
		return ""
	}
	min := 0
	for i := 1; i < len(loop); i++ {
		if strings.Compare(loop[i], loop[min]) < 0 {
			min = i
		}
	}
	rotated := make([]string, 0, len(loop))
	rotated = append(rotated, loop[min:]...)
	rotated = append(rotated, loop[:min]...)
	return strings.Join(rotated, "->")
}
