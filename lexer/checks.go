package lexer

import "strings"

// check if a given rune matches a given criteria
type CheckFn func(rune) bool

func Eq(valid rune) CheckFn {
	return func(r rune) bool { return r == valid }
}

func In(valid string) CheckFn {
	return func(r rune) bool { return strings.ContainsRune(valid, r) }
}

func Not(valid CheckFn) CheckFn {
	return func(r rune) bool { return !valid(r) }
}

func Or(checks ...CheckFn) CheckFn {
	return func(r rune) bool {
		for _, valid := range checks {
			if valid(r) {
				return true
			}
		}
		return false
	}
}
