// Package target implements the fan-out selector shared by every view:
// a target is either one concrete ordinal or every ordinal in a network.
// Using a tagged value instead of the raw "all" string keeps the
// string-sentinel comparison in exactly one place (Parse).
package target

import (
	"fmt"
	"strconv"
	"strings"
)

// Selector identifies either a single 1-based ordinal or all ordinals.
// The zero value selects nothing useful; construct via One, All, or Parse.
type Selector struct {
	all     bool
	ordinal int
}

// One selects a single concrete ordinal.
func One(ordinal int) Selector { return Selector{ordinal: ordinal} }

// All selects every ordinal in range.
func All() Selector { return Selector{all: true} }

// Parse converts a flag value into a Selector. Accepted forms are the
// sentinel "all" (case-insensitive) and a positive decimal ordinal.
// Out-of-range ordinals are not detected here: range checking belongs to
// the address resolver, which has the network's counts.
func Parse(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return All(), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Selector{}, fmt.Errorf("invalid selector %q: want a positive ordinal or \"all\"", s)
	}
	return One(n), nil
}

// IsAll reports whether the selector fans out over every ordinal.
func (s Selector) IsAll() bool { return s.all }

// String renders the selector the way it was written on the command line.
func (s Selector) String() string {
	if s.all {
		return "all"
	}
	return strconv.Itoa(s.ordinal)
}

// ForEach invokes fn once per selected ordinal.
//
// With All, fn runs for every ordinal 1..count in ascending order,
// sequentially, and every ordinal is visited even when fn fails for some
// of them; the first failure is returned after the sweep completes.
// Callers that report per-target failures inline should return nil from
// fn so a partial failure does not abort or taint the run.
//
// With a concrete ordinal, fn runs exactly once and its error is returned
// directly. A concrete ordinal is passed through unchecked: the resolver
// rejects it at resolution time if it exceeds the network's count, and no
// partial output is produced for it.
func (s Selector) ForEach(count int, fn func(ordinal int) error) error {
	if !s.all {
		return fn(s.ordinal)
	}

	var firstErr error
	for i := 1; i <= count; i++ {
		if err := fn(i); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
