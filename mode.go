package safefn

import "context"

// Mode is the execution contract a wrapped handler is bound to.
type Mode uint8

const (
	// ModeSync handlers run on the caller's goroutine and must return their
	// output directly.
	ModeSync Mode = iota
	// ModeAsync handlers must return a *Pending built with Async.
	ModeAsync
)

func (m Mode) String() string {
	if m == ModeAsync {
		return "async"
	}
	return "sync"
}

// settle runs s against v under the mode's contract. Pending outcomes are
// awaited in ModeAsync and rejected, without running them, in ModeSync.
func (m Mode) settle(ctx context.Context, s Schema, v any) (Outcome, *Error) {
	o := s.Validate(ctx, v)
	if !o.Pending() {
		return o, nil
	}
	if m == ModeSync {
		return Outcome{}, NewError(ReasonAsyncValidation, "")
	}
	return o.Await(ctx), nil
}

// checkReturn enforces the handler's return contract. For ModeAsync it waits
// for the pending computation and returns its settlement, unless the handler
// also returned an error, which then short-circuits like in ModeSync.
func (m Mode) checkReturn(out any, err error) (settlement, *Error) {
	p, pending := out.(*Pending)
	switch m {
	case ModeAsync:
		if !pending || p == nil {
			return settlement{}, NewError(ReasonOnlyAsync, "handler "+string(ReasonOnlyAsync))
		}
		if err != nil {
			return settlement{err: err}, nil
		}
		return p.wait(), nil
	default:
		if pending {
			return settlement{}, NewError(ReasonOnlySync, "handler "+string(ReasonOnlySync))
		}
		return settlement{value: out, err: err}, nil
	}
}
