package utils

import "log/slog"

// IsEquivalent reports whether two answer strings denote the same answer
// after normalization. If normalization fails on either side the comparison
// falls back to raw string equality.
func IsEquivalent(a, b string) bool {
	na, errA := Normalize(a)
	nb, errB := Normalize(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return na == nb
}

// AnswersEquivalent is the nil-aware form of IsEquivalent for callers where
// either answer may be absent. Two absent answers compare equal; that is a
// degenerate input worth flagging. An answer is never equivalent to a
// missing one.
func AnswersEquivalent(a, b *string) bool {
	if a == nil && b == nil {
		slog.Warn("comparing two missing answers")
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return IsEquivalent(*a, *b)
}
