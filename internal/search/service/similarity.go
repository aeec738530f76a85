package service

// Levenshtein counts single-rune insertions, deletions and substitutions.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			curr[i] = min3(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

func min3(a, b, c int) int { return min(min(a, b), c) }

// EditSimilar: both longer than 2 runes and at most 30% of the longer one edited.
// Short codes must be equal.
func EditSimilar(a, b string) bool {
	return editSimilar(Normalize(a), Normalize(b))
}

func editSimilar(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := runeLen(a), runeLen(b)
	if la <= 2 || lb <= 2 {
		return a == b
	}
	allowed := max(la, lb) * 3 / 10
	return Levenshtein(a, b) <= allowed
}

type gramSet map[string]struct{}

// trigrams returns the overlapping 3-rune substrings of s.
func trigrams(s string) gramSet {
	r := []rune(s)
	g := make(gramSet, max(len(r)-2, 0))
	for i := 0; i+3 <= len(r); i++ {
		g[string(r[i:i+3])] = struct{}{}
	}
	return g
}

// dice = 2*|shared| / (|a| + |b|)
func dice(a, b gramSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for g := range a {
		if _, ok := b[g]; ok {
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(a)+len(b))
}

// Dice is the trigram Dice coefficient of two values after normalization.
func Dice(a, b string) float64 {
	return dice(trigrams(Normalize(a)), trigrams(Normalize(b)))
}

const diceThreshold = 0.4

// TrigramSimilar: same 3-rune prefix, or Dice coefficient above 0.4.
// Words under 3 runes never qualify.
func TrigramSimilar(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	return trigramSimilar(a, b, trigrams)
}

func trigramSimilar(a, b string, grams func(string) gramSet) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < 3 || len(rb) < 3 {
		return false
	}
	if string(ra[:3]) == string(rb[:3]) {
		return true
	}
	return dice(grams(a), grams(b)) > diceThreshold
}

// AreSimilarWords accepts a pair when either notion of similarity does.
func AreSimilarWords(a, b string) bool {
	a, b = Normalize(a), Normalize(b)
	return editSimilar(a, b) || trigramSimilar(a, b, trigrams)
}
