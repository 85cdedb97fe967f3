package services

// Points awarded per guess: the exact score is worth 3, getting only the
// outcome right (home win / draw / away win) is worth 1.
const (
	PointsExactHit          = 3
	PointsCorrectPrediction = 1
)

// GuessScore is the result of evaluating a single guess against a final
// score. At most one of ExactHit / CorrectPrediction is set.
type GuessScore struct {
	Points            int
	ExactHit          bool
	CorrectPrediction bool
}

// EvaluateGuess scores a guess against the actual final score. Callers must
// only invoke it for matches whose score is present; score-less matches are
// excluded from aggregation, not scored as a miss.
func EvaluateGuess(actualHome, actualAway, guessedHome, guessedAway int) GuessScore {
	if actualHome == guessedHome && actualAway == guessedAway {
		return GuessScore{Points: PointsExactHit, ExactHit: true}
	}
	if sign(actualHome-actualAway) == sign(guessedHome-guessedAway) {
		return GuessScore{Points: PointsCorrectPrediction, CorrectPrediction: true}
	}
	return GuessScore{}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
