package runtime

// Range is the integer sequence produced by range(start, stop, step).
// Elements are always Int; a zero step can never terminate and faults
// at construction.
type Range struct {
	Start, Stop, Step int64
}

// NewRange validates the step and builds the sequence descriptor.
func NewRange(start, stop, step int64) (Range, error) {
	if step == 0 {
		return Range{}, &FaultError{Kind: FaultStep, Message: "range step must not be zero"}
	}
	return Range{Start: start, Stop: stop, Step: step}, nil
}

// Len returns the element count.
func (r Range) Len() int64 {
	if r.Step > 0 {
		if r.Start >= r.Stop {
			return 0
		}
		return (r.Stop - r.Start + r.Step - 1) / r.Step
	}
	if r.Start <= r.Stop {
		return 0
	}
	return (r.Start - r.Stop - r.Step - 1) / -r.Step
}

// At returns the i-th element.
func (r Range) At(i int64) (int64, error) {
	if i < 0 || i >= r.Len() {
		return 0, indexFault(int(i), int(r.Len()))
	}
	return r.Start + i*r.Step, nil
}
