// Package safefn wraps plain Go functions into safe callable units.
//
// A Declaration carries an input schema, an output schema and an optional
// list of typed error kinds. Binding a handler produces a function that:
//
//   - backfills positional defaults and validates the arguments,
//   - runs the handler only when the arguments are valid,
//   - validates the returned value against the output schema,
//   - classifies returned or panicked errors against the declared kinds,
//
// and always reports the outcome as a Result instead of panicking.
//
// Modes:
//   - HandlerSync binds a Func that returns its value directly. Schemas that
//     yield pending outcomes are rejected in this mode.
//   - Handler binds a Func that returns a *Pending (see Async). The call
//     returns a *Future[Result] and pending validation is awaited.
//
// Error model:
//   - *Error with a Reason for contract violations, validation failures
//     and unexpected panics.
//   - Typed errors (Reason "typed error") carry the kind name and the
//     validated payload; Result.IsDefined reports them.
//   - ErrorHelpers are passed to the handler when kinds are declared, so it
//     can build a typed payload with the discriminant filled in.
//
// Schemas are anything implementing Schema; the dsl package provides a
// ready-made set, and jsonschema renders their descriptions.
//
// Typical usage:
//
//	speed := safefn.New().
//	    Input(dsl.Tuple(dsl.Enum("slow", "normal", "fast"), dsl.Number().Default(123))).
//	    Output(dsl.Object().Field("foo", dsl.String()).Required().MustBuild()).
//	    HandlerSync(func(ctx context.Context, args safefn.Args) (any, error) {
//	        return map[string]any{"foo": fmt.Sprintf("%s-%v", args.At(0), args.At(1))}, nil
//	    })
//
//	res := speed(ctx, "fast") // res.Data() == map[foo:fast-123]
package safefn
