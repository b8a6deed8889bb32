// Package demo holds the sample handlers served by the safefn CLI.
package demo

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/reoring/safefn"
	"github.com/reoring/safefn/dsl"
)

// Entry is one wrapped handler together with its declaration.
type Entry struct {
	Name    string
	Summary string
	Mode    safefn.Mode
	Decl    safefn.Declaration

	call func(ctx context.Context, args ...any) (safefn.Result, error)
}

// Call invokes the handler. For asynchronous handlers it waits for the
// result; the returned error is non-nil only when ctx ends first.
func (e Entry) Call(ctx context.Context, args ...any) (safefn.Result, error) {
	return e.call(ctx, args...)
}

// Catalog is an immutable set of entries keyed by name.
type Catalog struct {
	entries map[string]Entry
	dir     *directory
}

// NewCatalog binds every sample handler. opts apply to each declaration, so
// a logger or Config set here reaches every call.
func NewCatalog(opts ...safefn.Option) *Catalog {
	c := &Catalog{entries: map[string]Entry{}, dir: newDirectory()}
	c.addSync("speed", "format a speed and retry count", speedDecl().With(opts...), speed)
	c.addSync("divide", "divide two numbers, reporting division by zero as a typed error", divideDecl().With(opts...), divide)
	c.addAsync("lookup", "look up a user by id in the in-memory directory", lookupDecl().With(opts...), c.dir.lookup)
	return c
}

func (c *Catalog) addSync(name, summary string, d safefn.Declaration, fn safefn.Func) {
	h := d.HandlerSync(fn)
	c.entries[name] = Entry{Name: name, Summary: summary, Mode: safefn.ModeSync, Decl: d,
		call: func(ctx context.Context, args ...any) (safefn.Result, error) { return h(ctx, args...), nil }}
}

func (c *Catalog) addAsync(name, summary string, d safefn.Declaration, fn safefn.Func) {
	h := d.Handler(fn)
	c.entries[name] = Entry{Name: name, Summary: summary, Mode: safefn.ModeAsync, Decl: d,
		call: func(ctx context.Context, args ...any) (safefn.Result, error) {
			return h(safefn.WithService(ctx, c.dir), args...).Await(ctx)
		}}
}

// Lookup returns the entry called name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Entries returns all entries sorted by name.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ---- speed ----

func speedDecl() safefn.Declaration {
	return safefn.New().
		Input(dsl.Tuple(
			dsl.Enum("slow", "normal", "fast"),
			dsl.Number().Default(123),
		)).
		Output(dsl.Object().
			Field("foo", dsl.String().NonEmpty()).Required().
			MustBuild())
}

func speed(_ context.Context, args safefn.Args) (any, error) {
	return map[string]any{"foo": fmt.Sprintf("%s-%v", args.At(0), args.At(1))}, nil
}

// ---- divide ----

func divideDecl() safefn.Declaration {
	byZero := dsl.Object().
		Field("code", dsl.Literal("DIVISION_BY_ZERO_ERROR")).Required().
		Field("message", dsl.String()).Required().
		Field("dividend", dsl.Number()).Required().
		MustBuild()
	return safefn.New().
		Input(dsl.Tuple(dsl.Number(), dsl.Number())).
		Output(dsl.Number()).
		Errors(safefn.Kind("divisionByZero", byZero))
}

func divide(_ context.Context, args safefn.Args) (any, error) {
	a := safefn.Arg[float64](args, 0)
	b := safefn.Arg[float64](args, 1)
	if b == 0 {
		return nil, args.Errors().New("divisionByZero", map[string]any{
			"message":  "cannot divide by zero",
			"dividend": a,
		})
	}
	return a / b, nil
}

// ---- lookup ----

type directory struct {
	mu        sync.RWMutex
	users     map[string]map[string]any
	suspended map[string]bool
}

func newDirectory() *directory {
	return &directory{
		users: map[string]map[string]any{
			"u_1": {"id": "u_1", "name": "Alice", "admin": true},
			"u_2": {"id": "u_2", "name": "Bob", "admin": false},
			"u_7": {"id": "u_7", "name": "Mallory", "admin": false},
		},
		suspended: map[string]bool{"u_7": true},
	}
}

func (d *directory) isSuspended(id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.suspended[id]
}

func (d *directory) get(id string) (map[string]any, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out, true
}

func lookupDecl() safefn.Declaration {
	notFound := dsl.Object().
		Field("code", dsl.Literal("notFound")).Required().
		Field("id", dsl.String()).Required().
		MustBuild()
	id := dsl.String().NonEmpty().Pattern(`^u_`)
	// the suspension list lives in the directory reached through ctx
	active := dsl.RefineAsync(id, "active", func(ctx context.Context, v any) error {
		dir, err := safefn.RequireService[*directory](ctx)
		if err != nil {
			return err
		}
		if dir.isSuspended(v.(string)) {
			return fmt.Errorf("user %s is suspended", v)
		}
		return nil
	})
	return safefn.New().
		Input(dsl.Tuple(active)).
		Output(dsl.Object().
			Field("id", dsl.String()).Required().
			Field("name", dsl.String().NonEmpty()).Required().
			Field("admin", dsl.Bool()).Default(false).
			MustBuild()).
		Errors(safefn.Kind("notFound", notFound))
}

func (d *directory) lookup(_ context.Context, args safefn.Args) (any, error) {
	id := safefn.Arg[string](args, 0)
	errs := args.Errors()
	return safefn.Async(func() (any, error) {
		u, ok := d.get(id)
		if !ok {
			return nil, errs.New("notFound", map[string]any{"id": id})
		}
		return u, nil
	}), nil
}
