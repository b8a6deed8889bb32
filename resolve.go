package safefn

import "context"

// resolveArgs turns the caller's raw arguments into the handler's argument
// list: trailing defaults are backfilled for positional schemas, then the
// input schema runs exactly once over the whole list.
func resolveArgs(ctx context.Context, m Mode, s Schema, raw []any) ([]any, *Error) {
	args := backfill(s, raw)
	o, cerr := m.settle(ctx, s, args)
	if cerr != nil {
		return nil, cerr
	}
	if !o.OK() {
		return nil, NewError(ReasonValidation, "input validation failed", WithIssues(o.Issues()))
	}
	if list, ok := o.Value().([]any); ok {
		return list, nil
	}
	return []any{o.Value()}, nil
}

// backfill copies raw and appends the values of missing trailing positional
// slots, stopping at the first slot the schema has nothing for. Validation
// then reports that slot and any after it.
func backfill(s Schema, raw []any) []any {
	p, ok := s.(Positional)
	n := len(raw)
	if ok && p.Arity() > n {
		n = p.Arity()
	}
	args := make([]any, len(raw), n)
	copy(args, raw)
	if !ok {
		return args
	}
	for i := len(raw); i < p.Arity(); i++ {
		d, has := p.DefaultAt(i)
		if !has {
			break
		}
		args = append(args, d)
	}
	return args
}
