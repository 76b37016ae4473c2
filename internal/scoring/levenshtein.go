package scoring

// Distance computes the Levenshtein distance between a and b over runes,
// with unit costs for insertion, deletion and substitution.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// DP cost matrix, (len(rb)+1) x (len(ra)+1).
	d := make([][]int, len(rb)+1)
	for i := range d {
		d[i] = make([]int, len(ra)+1)
		d[i][0] = i
	}
	for j := 0; j <= len(ra); j++ {
		d[0][j] = j
	}

	for i := 1; i <= len(rb); i++ {
		for j := 1; j <= len(ra); j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			deletion := d[i-1][j] + 1
			insertion := d[i][j-1] + 1
			substitution := d[i-1][j-1] + cost

			best := deletion
			if insertion < best {
				best = insertion
			}
			if substitution < best {
				best = substitution
			}
			d[i][j] = best
		}
	}

	return d[len(rb)][len(ra)]
}

// Accuracy normalizes both texts and converts their edit distance into a
// 0-100 percentage: max(0, (1 - distance/maxLen) * 100). When both normalize
// to empty strings the accuracy is 100: nothing was expected and nothing
// was said.
func Accuracy(transcribed, expected string) float64 {
	nt := Normalize(transcribed)
	ne := Normalize(expected)

	maxLen := len([]rune(nt))
	if l := len([]rune(ne)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}

	accuracy := (1 - float64(Distance(nt, ne))/float64(maxLen)) * 100
	if accuracy < 0 {
		return 0
	}
	return accuracy
}
