package safefn

import "fmt"

// Result is the uniform value returned by every wrapped call.
//
// It is a fixed triple (data, error, isDefined) that can be read by name
// (Data, Err, IsDefined) or by position (At, Unpack). Exactly one of data and
// error is meaningful: Err is nil on success. IsDefined is true only when the
// error matched one of the declared error kinds.
type Result struct {
	data    any
	err     error
	defined bool
}

// newResult is the single constructor for Result values.
func newResult(data any, err error, defined bool) Result {
	if err != nil {
		return Result{err: err, defined: defined}
	}
	return Result{data: data}
}

func (r Result) Data() any       { return r.data }
func (r Result) Err() error      { return r.err }
func (r Result) IsDefined() bool { return r.defined }

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.err == nil }

// Len is always 3.
func (r Result) Len() int { return 3 }

// At returns the slot at index i: 0 data, 1 error, 2 isDefined.
func (r Result) At(i int) any {
	switch i {
	case 0:
		return r.data
	case 1:
		return r.err
	case 2:
		return r.defined
	default:
		panic(fmt.Sprintf("safefn: result index %d out of range [0,3)", i))
	}
}

// Unpack returns the triple for destructuring call sites:
//
//	data, err, defined := res.Unpack()
func (r Result) Unpack() (any, error, bool) { return r.data, r.err, r.defined }

// Map renders the result with its field names, e.g. for encoding.
func (r Result) Map() map[string]any {
	var ev any
	if r.err != nil {
		ev = errorView(r.err)
	}
	return map[string]any{"data": r.data, "error": ev, "isDefined": r.defined}
}

// DataAs returns the data slot converted to T.
func DataAs[T any](r Result) (T, bool) {
	v, ok := r.data.(T)
	return v, ok
}

// errorView is a plain-value projection of an error used by Result.Map.
func errorView(err error) any {
	e, ok := AsError(err)
	if !ok {
		if ve, ok := err.(*ValueError); ok && ve != nil {
			return ve.Value
		}
		return err.Error()
	}
	out := map[string]any{"reason": string(e.reason), "message": e.message}
	if e.kind != "" {
		out["kind"] = e.kind
		out["payload"] = e.Payload()
	}
	if len(e.issues) > 0 {
		iss := make([]map[string]any, 0, len(e.issues))
		for _, it := range e.issues {
			iss = append(iss, map[string]any{"path": it.Path, "code": it.Code, "message": it.Message})
		}
		out["issues"] = iss
	}
	if e.cause != nil {
		out["cause"] = e.cause.Error()
	}
	return out
}
