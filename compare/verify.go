package compare

import "fmt"

// Stage names the check that rejected an iteration.
type Stage int

const (
	// StageNone marks a verdict without a failing stage.
	StageNone Stage = iota
	// StageGeneric is the check of the generic draw against the
	// destination and source buffers.
	StageGeneric
	// StageDualSource is the check of the dual-source draw against the
	// generic draw.
	StageDualSource
)

// String returns the stage label used in failure messages.
func (s Stage) String() string {
	switch s {
	case StageNone:
		return "NONE"
	case StageGeneric:
		return "GENERIC"
	case StageDualSource:
		return "DUAL-SOURCE"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Verdict is the outcome of Verify.
type Verdict struct {
	OK bool
	// Degenerate is set when the destination buffer of ReusedColor reads
	// back as all zero bytes; nothing else is checked then.
	Degenerate bool
	Stage      Stage
	// Attachments lists the failing attachment indices in ascending order.
	Attachments []int
}

// Readback is the set of buffers one iteration reads back, each holding
// one buffer per attachment.
type Readback struct {
	Dest       [][]byte
	Generic    [][]byte
	DualSource [][]byte
	Source     [][]byte
}

// Verify checks one iteration in two phases.
//
// The generic draw leaves attachment 0 untouched, so generic[0] must equal
// the destination or the source buffer, while every other generic buffer
// must differ from one of them entirely. Only if that holds, each
// dual-source buffer is matched against the generic attachment drawn with
// the same color: dual[0] against generic[ReusedColor], the remaining
// ones against themselves.
func Verify(rb Readback, l Layout) (Verdict, error) {
	for _, set := range [][][]byte{rb.Dest, rb.Generic, rb.DualSource, rb.Source} {
		if len(set) != Attachments {
			return Verdict{}, fmt.Errorf("%w: %d buffers, want %d", ErrLayout, len(set), Attachments)
		}
		for i, buf := range set {
			if len(buf) < l.Size() {
				return Verdict{}, fmt.Errorf("%w: attachment %d holds %d bytes, want %d",
					ErrLayout, i, len(buf), l.Size())
			}
		}
	}

	if IsZero(rb.Dest[ReusedColor]) {
		return Verdict{Degenerate: true}, nil
	}

	var failed []int
	for i := 0; i < Attachments; i++ {
		eq := i == 0
		if !Buffers(rb.Generic[i], rb.Dest[i], l, eq) && !Buffers(rb.Generic[i], rb.Source[i], l, eq) {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		return Verdict{Stage: StageGeneric, Attachments: failed}, nil
	}

	for i := 1; i < Attachments; i++ {
		j := i
		if i == ReusedColor {
			j = 0
		}
		if !Buffers(rb.DualSource[j], rb.Generic[i], l, true) {
			failed = append(failed, i)
		}
	}
	if len(failed) > 0 {
		return Verdict{Stage: StageDualSource, Attachments: failed}, nil
	}
	return Verdict{OK: true}, nil
}
