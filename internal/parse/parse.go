// Package parse tokenizes declaration expressions such as
// "int, oneof(int,string), prompt=string".
package parse

import "strings"

// Token is a single top-level term: a name and, for call-like terms such as
// oneof(a,b), its parameters.
type Token struct {
	Name   string
	Params []string
	// Call is set when the term carried parentheses, even if empty.
	Call bool
}

// Split splits an expression on top-level commas only; commas inside
// parentheses do not split. Tokens are trimmed and empty tokens are kept so
// callers can reject them.
func Split(expr string) []string {
	var tokens []string
	depth := 0
	start := 0
	for i, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, strings.TrimSpace(expr[start:i]))
				start = i + 1
			}
		}
	}
	// Append the last token
	if start <= len(expr) {
		tokens = append(tokens, strings.TrimSpace(expr[start:]))
	}
	return tokens
}

// ParseToken splits a term like "oneof(int, string)" into its name and
// parameters. Parameters are split on their own top-level commas, so nested
// terms such as oneof(int, oneof(a, b)) stay whole.
func ParseToken(tok string) Token {
	tok = strings.TrimSpace(tok)
	idx := strings.IndexRune(tok, '(')
	if idx == -1 || !strings.HasSuffix(tok, ")") {
		return Token{Name: tok}
	}
	t := Token{Name: strings.TrimSpace(tok[:idx]), Call: true}
	inner := strings.TrimSpace(tok[idx+1 : len(tok)-1])
	if inner == "" {
		return t
	}
	t.Params = Split(inner)
	return t
}

// Balanced reports whether every parenthesis in expr is matched.
func Balanced(expr string) bool {
	depth := 0
	for _, r := range expr {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
