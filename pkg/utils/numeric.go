package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

const evalEpsilon = 1e-9

// EvalNumber evaluates s as a plain number or an arithmetic expression and
// returns its value.
func EvalNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	expression, err := govaluate.NewEvaluableExpression(s)
	if err != nil {
		return 0, false
	}
	result, err := expression.Evaluate(nil)
	if err != nil {
		return 0, false
	}
	f, ok := result.(float64)
	return f, ok
}

// EvalEquivalent reports whether two answers evaluate to the same number.
// This is a looser comparison than IsEquivalent ("2+2" matches "4") and is
// never consulted by the reward computation itself.
func EvalEquivalent(a, b string) bool {
	fa, okA := EvalNumber(a)
	fb, okB := EvalNumber(b)
	if !okA || !okB {
		return false
	}
	return math.Abs(fa-fb) < evalEpsilon
}
