package compiler

import (
	"reflect"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
		wantDiag bool
	}{
		{
			name:  "Empty",
			input: "",
			expected: []Token{
				{Kind: EOF, Line: 1, Column: 1},
			},
		},
		{
			name:  "Operators",
			input: "+ - == != <= >= && ||",
			expected: []Token{
				{Kind: Operator, Lexeme: "+", Line: 1, Column: 1},
				{Kind: Operator, Lexeme: "-", Line: 1, Column: 3},
				{Kind: Operator, Lexeme: "==", Line: 1, Column: 5},
				{Kind: Operator, Lexeme: "!=", Line: 1, Column: 8},
				{Kind: Operator, Lexeme: "<=", Line: 1, Column: 11},
				{Kind: Operator, Lexeme: ">=", Line: 1, Column: 14},
				{Kind: Operator, Lexeme: "&&", Line: 1, Column: 17},
				{Kind: Operator, Lexeme: "||", Line: 1, Column: 20},
				{Kind: EOF, Line: 1, Column: 22},
			},
		},
		{
			name:  "Keywords and identifiers",
			input: "if else for return call Double String total",
			expected: []Token{
				{Kind: Keyword, Lexeme: "if", Line: 1, Column: 1},
				{Kind: Keyword, Lexeme: "else", Line: 1, Column: 4},
				{Kind: Keyword, Lexeme: "for", Line: 1, Column: 9},
				{Kind: Keyword, Lexeme: "return", Line: 1, Column: 13},
				{Kind: Keyword, Lexeme: "call", Line: 1, Column: 20},
				{Kind: Keyword, Lexeme: "Double", Line: 1, Column: 25},
				{Kind: Keyword, Lexeme: "String", Line: 1, Column: 32},
				{Kind: Identifier, Lexeme: "total", Line: 1, Column: 39},
				{Kind: EOF, Line: 1, Column: 44},
			},
		},
		{
			name:  "Numbers",
			input: "42 3.14",
			expected: []Token{
				{Kind: Number, Lexeme: "42", Line: 1, Column: 1},
				{Kind: Number, Lexeme: "3.14", Line: 1, Column: 4},
				{Kind: EOF, Line: 1, Column: 8},
			},
		},
		{
			name:  "String literal",
			input: `"hello world"`,
			expected: []Token{
				{Kind: String, Lexeme: `"hello world"`, Line: 1, Column: 1},
				{Kind: EOF, Line: 1, Column: 14},
			},
		},
		{
			name:     "Unterminated string skips to end of line",
			input:    "\"oops\nx = 1;",
			wantDiag: true,
			expected: []Token{
				{Kind: Identifier, Lexeme: "x", Line: 2, Column: 1},
				{Kind: Operator, Lexeme: "=", Line: 2, Column: 3},
				{Kind: Number, Lexeme: "1", Line: 2, Column: 5},
				{Kind: Operator, Lexeme: ";", Line: 2, Column: 6},
				{Kind: EOF, Line: 2, Column: 7},
			},
		},
		{
			name:     "Unexpected character is skipped",
			input:    "x = 1 @ 2;",
			wantDiag: true,
			expected: []Token{
				{Kind: Identifier, Lexeme: "x", Line: 1, Column: 1},
				{Kind: Operator, Lexeme: "=", Line: 1, Column: 3},
				{Kind: Number, Lexeme: "1", Line: 1, Column: 5},
				{Kind: Number, Lexeme: "2", Line: 1, Column: 9},
				{Kind: Operator, Lexeme: ";", Line: 1, Column: 10},
				{Kind: EOF, Line: 1, Column: 11},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tokens, diags := Lex(tc.input, nil)
			if !reflect.DeepEqual(tokens, tc.expected) {
				t.Errorf("tokens = %v, want %v", tokens, tc.expected)
			}
			if tc.wantDiag && len(diags) == 0 {
				t.Errorf("expected at least one diagnostic, got none")
			}
			if !tc.wantDiag && len(diags) != 0 {
				t.Errorf("unexpected diagnostics: %v", diags)
			}
		})
	}
}

func TestLexNeverStopsOnBadInput(t *testing.T) {
	tokens, _ := Lex("x = @ # $ 1;", nil)
	if tokens[len(tokens)-1].Kind != EOF {
		t.Fatalf("expected lexing to reach EOF, last token was %v", tokens[len(tokens)-1])
	}
}
