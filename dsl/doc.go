// Package dsl provides a small schema DSL that satisfies the safefn schema
// contract.
//
// Overview
//   - Primitives: String()/Number()/Int()/Bool()/Enum()/Literal()/Any()/Time().
//   - Composites: Array(elem), Tuple(items...), Object() builder.
//   - Decorations: Default/DefaultFunc/Nullable/Refine/RefineAsync on AnyAdapter.
//   - JSON Schema: every schema implements JSONSchema() for export.
//
// Entry points
//   - Tuple(...): positional input schema for handlers; per-item defaults are
//     backfilled by safefn before validation.
//   - Object(): create an object builder; chain Field/Required/Unknown* then
//     MustBuild()/Build. Unknown keys are rejected unless UnknownStrip or
//     UnknownPassthrough is set.
//   - Adapt(s): wrap any safefn.Schema (for example a SchemaFunc) so it can be
//     decorated.
//
// File layout (roles)
//   - compose.go: shared helpers (issue construction, pending propagation).
//   - adapter.go: AnyAdapter and its decorations.
//   - primitives.go: scalar schemas and numeric normalization.
//   - time.go: RFC3339 timestamps.
//   - array.go / tuple.go: list schemas.
//   - object_builder.go / object_core.go: object builder and its schema.
//
// Pending outcomes
//
// RefineAsync always yields a pending outcome. Composite schemas stay pending
// while any child is pending, so a synchronous handler rejects such inputs
// without running the deferred checks.
//
// Example
//
//	in := dsl.Tuple(
//	    dsl.String().NonEmpty(),
//	    dsl.Int().Min(1).Default(10),
//	)
//	out := dsl.Object().
//	    Field("id", dsl.String()).Required().
//	    Field("limit", dsl.Int()).Required().
//	    MustBuild()
//	list := safefn.New().Input(in).Output(out).HandlerSync(fn)
//	res := list(ctx, "users") // limit defaults to 10
package dsl
