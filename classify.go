package safefn

import (
	"context"
	"errors"
)

// classify matches candidate against the declared kinds in declaration order.
// It returns the typed error of the first kind whose schema accepts the
// candidate's payload, nil when none does, or a contract error when a kind
// schema needed asynchronous validation in ModeSync.
func classify(ctx context.Context, m Mode, kinds []ErrorKind, candidate any) (*Error, *Error) {
	if len(kinds) == 0 || candidate == nil {
		return nil, nil
	}
	payload := payloadOf(candidate)
	for _, k := range kinds {
		o, cerr := m.settle(ctx, k.schema, payload)
		if cerr != nil {
			return nil, cerr
		}
		if o.OK() {
			return typedError(k.name, o.Value()), nil
		}
	}
	return nil, nil
}

// payloadOf extracts the value matched against error schemas: the payload of
// a typed *Error, the value carried by a *ValueError, or the candidate
// itself.
func payloadOf(candidate any) any {
	err, ok := candidate.(error)
	if !ok {
		return candidate
	}
	if e, ok := AsError(err); ok && e.Typed() {
		return e.Payload()
	}
	var ve *ValueError
	if errors.As(err, &ve) {
		return ve.Value
	}
	return candidate
}

// causeOf turns a recovered panic value into an error.
func causeOf(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &ValueError{Value: r}
}
