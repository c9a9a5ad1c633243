package resolution

// Similarity returns the Ratcliff/Obershelp ratio between two normalized
// strings: twice the number of matching characters divided by the total
// number of characters. The result is in [0,1], symmetric, 1 for equal
// strings, and needs no external state, so repeated runs over the same
// input always score identically.
func Similarity(a string, b string) float64 {
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	return 2.0 * float64(matchingRunes(ra, rb)) / float64(total)
}

// matchingRunes counts the characters covered by the matching blocks of a
// and b: the longest common substring, then recursively the pieces to its
// left and to its right.
func matchingRunes(a []rune, b []rune) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}

	matched := size
	matched += matchingRunes(a[:ai], b[:bi])
	matched += matchingRunes(a[ai+size:], b[bi+size:])
	return matched
}

// longestCommonSubstring finds the longest run of identical runes shared by
// a and b, preferring the earliest position in a and then in b so that tie
// handling is deterministic.
func longestCommonSubstring(a []rune, b []rune) (int, int, int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	bestA, bestB, bestSize := 0, 0, 0
	prev := make([]int, len(b))
	curr := make([]int, len(b))

	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				curr[j] = 0
				continue
			}
			if j == 0 {
				curr[j] = 1
			} else {
				curr[j] = prev[j-1] + 1
			}
			if curr[j] > bestSize {
				bestSize = curr[j]
				bestA = i - bestSize + 1
				bestB = j - bestSize + 1
			}
		}
		prev, curr = curr, prev
	}

	return bestA, bestB, bestSize
}
