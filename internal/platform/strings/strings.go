// Package strings provides string and slice helpers
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// IsBlank reports whether s has no non whitespace content
func IsBlank(s string) bool { return std.TrimSpace(s) == "" }

// AllBlank reports whether every value is blank (true for no values)
func AllBlank(vals ...string) bool {
	for _, v := range vals {
		if !IsBlank(v) {
			return false
		}
	}
	return true
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if IsBlank(s) {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /facilities or /meta
// ensures a single leading slash and no trailing slash
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}
