package safefn

// Args is what a handler receives: the resolved positional arguments plus,
// when error kinds are declared, the ErrorHelpers placed first or last
// according to Config.HelpersFirst.
type Args []any

// Values returns the resolved positional arguments without the helpers.
func (a Args) Values() []any {
	out := make([]any, 0, len(a))
	for _, v := range a {
		if _, ok := v.(ErrorHelpers); ok {
			continue
		}
		out = append(out, v)
	}
	return out
}

// At returns the i-th resolved argument, or nil when out of range.
func (a Args) At(i int) any {
	vs := a.Values()
	if i < 0 || i >= len(vs) {
		return nil
	}
	return vs[i]
}

// Errors returns the error helpers, or nil when no kinds were declared.
func (a Args) Errors() ErrorHelpers {
	for _, v := range a {
		if h, ok := v.(ErrorHelpers); ok {
			return h
		}
	}
	return nil
}

// Arg returns the i-th resolved argument converted to T. The zero value is
// returned when the slot is missing or holds another type.
func Arg[T any](a Args, i int) T {
	v, _ := a.At(i).(T)
	return v
}

func withHelpers(args []any, h ErrorHelpers, first bool) Args {
	out := make(Args, 0, len(args)+1)
	if first {
		out = append(out, h)
		return append(out, args...)
	}
	out = append(out, args...)
	return append(out, h)
}
