package domain

// BestLabel selects the label with the strictly maximum score. On ties the
// first maximum wins, keeping selection deterministic regardless of the
// provider. Returns false when the score vector is empty or does not line
// up with the label set.
func BestLabel(labels []string, scores []float64) (string, bool) {
	if len(labels) == 0 || len(scores) != len(labels) {
		return "", false
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return labels[best], true
}
