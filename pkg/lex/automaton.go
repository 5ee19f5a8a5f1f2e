package lex

// Status is the verdict of a recognizer on a candidate lexeme.
type Status int

const (
	// Dead means that neither the candidate nor any extension of it can be
	// accepted.
	Dead Status = iota
	// Continue means that the candidate is not accepted, but some extension of
	// it may be.
	Continue
	// Accept means that the candidate is a complete lexeme.
	Accept
)

func (s Status) String() string {
	switch s {
	case Dead:
		return "dead"
	case Continue:
		return "continue"
	case Accept:
		return "accept"
	default:
		return "!bad status"
	}
}

// The dead state of every automaton.
const deadState = -1

// Automaton is a deterministic finite automaton over runes. States are small
// integers; the start state is always 0.
type Automaton struct {
	// Step returns the state reached from state by consuming r, or -1 if the
	// automaton gets stuck.
	Step func(state int, r rune) int
	// Accepting lists the accepting states.
	Accepting []int
}

// Run feeds the whole candidate to the automaton and reports its verdict.
func (a *Automaton) Run(candidate string) Status {
	state := 0
	for _, r := range candidate {
		state = a.Step(state, r)
		if state == deadState {
			return Dead
		}
	}
	for _, acc := range a.Accepting {
		if state == acc {
			return Accept
		}
	}
	return Continue
}

// Recognizer associates an automaton with the token kind it recognizes.
type Recognizer struct {
	Kind Kind
	*Automaton
}
