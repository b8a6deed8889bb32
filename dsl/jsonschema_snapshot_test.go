package dsl_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	g "github.com/reoring/safefn/dsl"
	js "github.com/reoring/safefn/jsonschema"
)

func assertSchemaGolden(t *testing.T, name string, s g.Schema) {
	t.Helper()
	sch, err := s.JSONSchema()
	if err != nil {
		t.Fatalf("JSONSchema: %v", err)
	}
	b, err := js.Marshal(sch)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	gd := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	gd.Assert(t, name, b)
}

func TestJSONSchema_Tuple(t *testing.T) {
	assertSchemaGolden(t, "tuple", g.Tuple(g.String().NonEmpty(), g.Int().Min(1).Default(10)))
}

func TestJSONSchema_Object(t *testing.T) {
	obj := g.Object().
		Field("id", g.String()).Required().
		Field("tags", g.Array(g.String()).Max(3)).
		Field("active", g.Bool()).Default(true).
		MustBuild()
	assertSchemaGolden(t, "object", obj)
}

func TestJSONSchema_EnumNullable(t *testing.T) {
	assertSchemaGolden(t, "enum_nullable", g.Enum("fast", "slow").Nullable())
}
