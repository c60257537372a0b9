package service

import "math/rand"

// shuffleAnswers returns the answers in uniform random order without
// mutating the input. Reproducibility is not required, so no fixed seed.
func shuffleAnswers(answers []string) []string {
	shuffled := make([]string, len(answers))
	copy(shuffled, answers)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
