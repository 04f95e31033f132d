// Package runtime implements the value model the checked programs
// execute against: growable containers with explicit capacity
// semantics, immutable byte strings, codepoint-indexed text, and
// integer ranges. Contract violations surface as FaultError values.
package runtime

import "fmt"

// FaultKind classifies a runtime contract violation.
type FaultKind int

const (
	// FaultIndex is an index outside [0, len).
	FaultIndex FaultKind = iota
	// FaultImmutable is a write to an immutable buffer.
	FaultImmutable
	// FaultStep is a range constructed with step 0.
	FaultStep
)

func (k FaultKind) String() string {
	switch k {
	case FaultIndex:
		return "index"
	case FaultImmutable:
		return "immutable"
	case FaultStep:
		return "step"
	}
	return "unknown"
}

// FaultError is a runtime contract violation. Faults are not part of
// the checked exception hierarchy; an uncaught fault is fatal.
type FaultError struct {
	Kind    FaultKind
	Message string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("fault: %s: %s", e.Kind, e.Message)
}

func indexFault(index, length int) *FaultError {
	return &FaultError{
		Kind:    FaultIndex,
		Message: fmt.Sprintf("index %d out of range for length %d", index, length),
	}
}
