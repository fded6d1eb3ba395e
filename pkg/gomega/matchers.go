package gomega

import (
	"errors"
	"fmt"

	g "github.com/onsi/gomega"
	gformat "github.com/onsi/gomega/format"
	gtypes "github.com/onsi/gomega/types"

	"github.com/meln5674/catgcd"
)

type MultiTaskErrorMatcher struct {
	Expected error
}

// MatchMultiTaskError succeeds if the actual error is a MultiTaskError
// and errors.Is matches the expected error with any of the errors in it recursively
func MatchMultiTaskError(expected error) gtypes.GomegaMatcher {
	return &MultiTaskErrorMatcher{Expected: expected}
}

func (m *MultiTaskErrorMatcher) Match(actual interface{}) (success bool, err error) {
	check := g.HaveOccurred()
	success, err = check.Match(actual)
	if !success || err != nil {
		return
	}
	check = g.MatchError(m.Expected)
	success, err = check.Match(actual)
	if err != nil {
		return
	}
	if success {
		return
	}
	check = g.BeAssignableToTypeOf(&catgcd.MultiTaskError{})
	success, err = check.Match(actual)
	if !success || err != nil {
		return
	}
	multi := new(catgcd.MultiTaskError)
	errors.As(actual.(error), &multi)
	for _, subActual := range multi.Errors {
		check = m
		success, err = check.Match(subActual)
		if success {
			return true, nil
		}
		if err != nil {
			return
		}
	}
	return false, nil
}

func (m *MultiTaskErrorMatcher) FailureMessage(actual interface{}) (message string) {
	check := g.HaveOccurred()
	success, _ := check.Match(actual)
	if !success {
		return check.FailureMessage(actual)
	}
	check = g.MatchError(m.Expected)
	success, _ = check.Match(actual)
	if success {
		panic("Impossible state")
	}
	check = g.BeAssignableToTypeOf(&catgcd.MultiTaskError{})
	success, _ = check.Match(actual)
	if !success {
		return check.FailureMessage(actual)
	}

	return fmt.Sprintf(
		"Expected\n%sto be somewhere within the tree of\n%s",
		gformat.Object(m.Expected, 1),
		gformat.Object(actual, 1),
	)
}

func (m *MultiTaskErrorMatcher) NegatedFailureMessage(actual interface{}) (message string) {
	check := g.HaveOccurred()
	success, _ := check.Match(actual)
	if success {
		return check.NegatedFailureMessage(actual)
	}
	check = g.MatchError(m.Expected)
	success, _ = check.Match(actual)
	if success {
		return check.NegatedFailureMessage(actual)
	}
	check = g.BeAssignableToTypeOf(&catgcd.MultiTaskError{})
	success, _ = check.Match(actual)
	if success {
		return check.NegatedFailureMessage(actual)
	}

	return fmt.Sprintf(
		"Expected\n%sto be nowhere within the tree of\n%s",
		gformat.Object(m.Expected, 1),
		gformat.Object(actual, 1),
	)
}
