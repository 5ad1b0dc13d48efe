package engine

type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyMed  Difficulty = "med"
	DifficultyHard Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMed, DifficultyHard:
		return true
	default:
		return false
	}
}

// DefaultDifficulty is used when user input is missing/invalid.
const DefaultDifficulty Difficulty = DifficultyEasy
