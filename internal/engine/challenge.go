package engine

import "math/rand"

// Problem is one arithmetic question. Answer is precomputed; subtraction
// may go negative and that is fine.
type Problem struct {
	A      int
	B      int
	Op     string // "+", "-", "*"
	Answer int
}

// RequiredStreak is how many consecutive correct answers dismiss a
// ringing alarm at the given difficulty.
func RequiredStreak(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 3
	case DifficultyMed:
		return 5
	default:
		return 7
	}
}

// NewProblem generates one problem. Operands grow and the operator mix
// shifts toward multiplication as difficulty rises.
func NewProblem(d Difficulty, rng *rand.Rand) Problem {
	var a, b int
	op := "+"

	switch d {
	case DifficultyMed:
		a = rng.Intn(20) + 5
		b = rng.Intn(20) + 5
		switch r := rng.Float64(); {
		case r < 0.4:
			op = "+"
		case r < 0.8:
			op = "-"
		default:
			op = "*"
		}
	case DifficultyHard:
		a = rng.Intn(40) + 10
		b = rng.Intn(20) + 5
		switch r := rng.Float64(); {
		case r < 0.6:
			op = "*"
		case r < 0.8:
			op = "+"
		default:
			op = "-"
		}
	default:
		a = rng.Intn(10) + 1
		b = rng.Intn(10) + 1
		if rng.Float64() >= 0.5 {
			op = "-"
		}
	}

	var answer int
	switch op {
	case "+":
		answer = a + b
	case "-":
		answer = a - b
	case "*":
		answer = a * b
	}

	return Problem{A: a, B: b, Op: op, Answer: answer}
}

// Mission is the in-progress challenge gate for one ringing alarm: a
// run of consecutive correct answers that must reach the required
// streak before the alarm can be dismissed.
type Mission struct {
	difficulty Difficulty
	rng        *rand.Rand
	needed     int
	correct    int
	problem    Problem
	resolved   bool
}

func NewMission(d Difficulty, rng *rand.Rand) *Mission {
	return &Mission{
		difficulty: d,
		rng:        rng,
		needed:     RequiredStreak(d),
		problem:    NewProblem(d, rng),
	}
}

func (m *Mission) Problem() Problem { return m.problem }
func (m *Mission) Needed() int      { return m.needed }
func (m *Mission) Correct() int     { return m.correct }
func (m *Mission) Resolved() bool   { return m.resolved }

// Submit checks an answer. A wrong answer resets the streak to zero; a
// correct one extends it. Either way a fresh problem is issued unless
// the mission resolved.
func (m *Mission) Submit(answer int) (correct bool, resolved bool) {
	if m.resolved {
		return true, true
	}
	if answer != m.problem.Answer {
		m.correct = 0
		m.problem = NewProblem(m.difficulty, m.rng)
		return false, false
	}
	m.correct++
	if m.correct >= m.needed {
		m.resolved = true
		return true, true
	}
	m.problem = NewProblem(m.difficulty, m.rng)
	return true, false
}
