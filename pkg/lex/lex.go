// Package lex implements the frdlisp lexer.
//
// The lexer works by maximal munch over a table of recognizers. Starting from
// a token boundary, it grows a candidate lexeme one rune at a time and runs
// every recognizer on it. Growing stops once all recognizers are dead. The
// longest candidate some recognizer was still alive on becomes the token if a
// recognizer accepts it, with the kind of the first recognizer in the table
// that does; otherwise it is a lex error.
package lex

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"src.frdlisp.dev/pkg/diag"
)

// Error is a lex error.
type Error = diag.Error[ErrorTag]

// ErrorTag parameterizes [diag.Error] to define [Error].
type ErrorTag struct{}

func (ErrorTag) ErrorTag() string { return "lex error" }

// Lexer tokenizes text using a table of recognizers.
type Lexer struct {
	Recognizers []Recognizer
}

// Default is the Lexer for the reference dialect.
var Default = &Lexer{Recognizers}

// Tokenize tokenizes code with the Default lexer. The name is used in error
// messages. The returned error, if not nil, always has type *Error.
func Tokenize(name, code string) ([]Token, error) {
	return Default.Tokenize(name, code)
}

// Tokenize splits code into tokens, skipping whitespace between them. The
// name is used in error messages. The returned error, if not nil, always has
// type *Error, and no tokens are returned with it.
func (lx *Lexer) Tokenize(name, code string) ([]Token, error) {
	// The trailing space kills every recognizer, so the last token is
	// flushed like any other.
	text := code + " "
	var tokens []Token
	pos := 0
	for pos < len(code) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if unicode.IsSpace(r) {
			pos += size
			continue
		}
		kind, end, ok := lx.munch(text, pos)
		if !ok {
			if end == pos {
				end = pos + size
			}
			end = min(end, len(code))
			return nil, &Error{
				Message: fmt.Sprintf("no token matches %q", code[pos:end]),
				Context: *diag.NewContext(name, code, diag.Ranging{From: pos, To: end}),
			}
		}
		tokens = append(tokens, Token{kind, code[pos:end], diag.Ranging{From: pos, To: end}})
		pos = end
	}
	return tokens, nil
}

// Finds the longest candidate starting at start on which some recognizer is
// still alive, and returns its end. If a recognizer accepts that candidate,
// kind is the kind of the first such recognizer and ok is true. A shorter
// accepted prefix doesn't count: "123," is not a number followed by ",".
func (lx *Lexer) munch(text string, start int) (kind Kind, end int, ok bool) {
	end = start
	for i := start; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
		candidate := text[start:i]

		alive, accepted := false, false
		var acceptedKind Kind
		for _, rec := range lx.Recognizers {
			switch rec.Run(candidate) {
			case Accept:
				if !accepted {
					accepted, acceptedKind = true, rec.Kind
				}
				alive = true
			case Continue:
				alive = true
			}
		}
		if !alive {
			break
		}
		kind, end, ok = acceptedKind, i, accepted
	}
	return kind, end, ok
}
