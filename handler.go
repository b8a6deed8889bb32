package safefn

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Func is the user function a declaration wraps. args holds the resolved
// positional arguments and, when error kinds are declared, the ErrorHelpers.
//
// A synchronous handler returns its output directly. An asynchronous handler
// returns the *Pending built by Async as its output. Returning a non-nil
// error short-circuits output validation; the output is then discarded. For
// an asynchronous handler that means a returned *Pending is not awaited. A nil
// *Error in the error slot counts as no error.
type Func func(ctx context.Context, args Args) (any, error)

// SyncFunc is a wrapped synchronous handler.
type SyncFunc func(ctx context.Context, args ...any) Result

// AsyncFunc is a wrapped asynchronous handler.
type AsyncFunc func(ctx context.Context, args ...any) *Future[Result]

// wrapper owns only what was captured at bind time; calls share no mutable
// state.
type wrapper struct {
	decl Declaration
	fn   Func
	mode Mode
}

func (w *wrapper) call(ctx context.Context, raw []any) (res Result) {
	log := w.logger()
	defer func() {
		// Faults outside the handler (schemas, helpers used after return)
		// still end up in the Result.
		if r := recover(); r != nil {
			log.Debug().Interface("panic", r).Msg("safefn: fault while wrapping call")
			res = newResult(nil, NewError(ReasonThrown, "", WithCause(causeOf(r))), false)
		}
	}()

	args, verr := resolveArgs(ctx, w.mode, w.decl.input, raw)
	if verr != nil {
		log.Debug().Err(verr).Str("reason", string(verr.reason)).Msg("safefn: input rejected")
		return newResult(nil, verr, false)
	}

	in := Args(args)
	if len(w.decl.kinds) > 0 {
		in = withHelpers(args, buildHelpers(ctx, w.mode, w.decl.kinds), w.decl.cfg.HelpersFirst)
	}

	s := w.invoke(ctx, in)
	if !s.panicked {
		var cerr *Error
		s, cerr = w.mode.checkReturn(s.value, s.err)
		if cerr != nil {
			log.Debug().Stringer("mode", w.mode).Str("reason", string(cerr.reason)).Msg("safefn: execution contract violated")
			return newResult(nil, cerr, false)
		}
	}

	switch {
	case s.panicked:
		return w.fromPanic(ctx, log, s.thrown)
	case s.err != nil:
		return w.fromReturned(ctx, log, s.err)
	}

	o, cerr := w.mode.settle(ctx, w.decl.output, s.value)
	if cerr != nil {
		return newResult(nil, cerr, false)
	}
	if !o.OK() {
		log.Debug().Str("issues", o.Issues().Error()).Msg("safefn: output rejected")
		return newResult(nil, NewError(ReasonValidation, "output validation failed", WithIssues(o.Issues())), false)
	}
	return newResult(o.Value(), nil, false)
}

// invoke runs the user function, capturing a panic as a thrown value.
func (w *wrapper) invoke(ctx context.Context, args Args) (s settlement) {
	defer func() {
		if r := recover(); r != nil {
			s = settlement{panicked: true, thrown: r}
		}
	}()
	v, err := w.fn(ctx, args)
	return settlement{value: v, err: realError(err)}
}

func (w *wrapper) fromPanic(ctx context.Context, log zerolog.Logger, thrown any) Result {
	typed, cerr := classify(ctx, w.mode, w.decl.kinds, thrown)
	if cerr != nil {
		return newResult(nil, cerr, false)
	}
	if typed != nil {
		log.Debug().Str("kind", typed.kind).Msg("safefn: typed error thrown")
		return newResult(nil, typed, true)
	}
	log.Debug().Interface("panic", thrown).Msg("safefn: handler panicked")
	return newResult(nil, NewError(ReasonThrown, "", WithCause(causeOf(thrown))), false)
}

func (w *wrapper) fromReturned(ctx context.Context, log zerolog.Logger, err error) Result {
	if len(w.decl.kinds) == 0 {
		log.Debug().Err(err).Msg("safefn: error returned")
		return newResult(nil, err, false)
	}
	typed, cerr := classify(ctx, w.mode, w.decl.kinds, err)
	if cerr != nil {
		return newResult(nil, cerr, false)
	}
	if typed != nil {
		log.Debug().Str("kind", typed.kind).Msg("safefn: typed error returned")
		return newResult(nil, typed, true)
	}
	if e, ok := err.(*Error); ok && !e.Typed() {
		return newResult(nil, e, false)
	}
	log.Debug().Err(err).Msg("safefn: untyped error returned")
	return newResult(nil, NewError(ReasonUntypedReturned, "", WithCause(err)), false)
}

// logger returns the call-scoped logger. A call id is attached only when
// debug events would be written.
func (w *wrapper) logger() zerolog.Logger {
	l := w.decl.log
	if l.GetLevel() > zerolog.DebugLevel || zerolog.GlobalLevel() > zerolog.DebugLevel {
		return l
	}
	id, err := uuid.NewV7()
	if err != nil {
		return l
	}
	return l.With().Str("call_id", id.String()).Str("mode", w.mode.String()).Logger()
}
