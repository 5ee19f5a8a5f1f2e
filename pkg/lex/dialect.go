package lex

import (
	"strings"
	"unicode"
)

// Operators are the characters recognized as primitive operators.
const Operators = "+-*/=<>"

// NumberSeparator is the one separator a number literal may contain.
const NumberSeparator = ','

// Recognizers is the token class table of the reference dialect. Earlier
// entries win when several recognizers accept a lexeme of the same length.
var Recognizers = []Recognizer{
	{OpenParen, exactly('(')},
	{CloseParen, exactly(')')},
	{Identifier, identifier},
	{Number, number},
	{PrimitiveOp, oneOf(Operators)},
}

func exactly(want rune) *Automaton {
	return &Automaton{
		Step: func(state int, r rune) int {
			if state == 0 && r == want {
				return 1
			}
			return deadState
		},
		Accepting: []int{1},
	}
}

func oneOf(set string) *Automaton {
	return &Automaton{
		Step: func(state int, r rune) int {
			if state == 0 && strings.ContainsRune(set, r) {
				return 1
			}
			return deadState
		},
		Accepting: []int{1},
	}
}

var identifier = &Automaton{
	Step: func(state int, r rune) int {
		switch {
		case state == 0 && unicode.IsLetter(r):
			return 1
		case state == 1 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			return 1
		}
		return deadState
	},
	Accepting: []int{1},
}

// 0 -digit-> 1 -digit-> 1 -sep-> 2 -digit-> 3 -digit-> 3
var number = &Automaton{
	Step: func(state int, r rune) int {
		digit := '0' <= r && r <= '9'
		switch {
		case (state == 0 || state == 1) && digit:
			return 1
		case state == 1 && r == NumberSeparator:
			return 2
		case (state == 2 || state == 3) && digit:
			return 3
		}
		return deadState
	},
	Accepting: []int{1, 3},
}
