package safefn

import (
	"fmt"

	"github.com/reoring/safefn/internal/casing"
)

// DefaultDiscriminant is the payload field that identifies an error kind.
const DefaultDiscriminant = "code"

// ErrorKind declares a named error a handler may report. Its schema
// describes the payload, including the discriminant field.
type ErrorKind struct {
	name   string
	schema Schema
	field  string
	tag    string
}

// Kind declares an error kind. Unless Tagged is used, error helpers inject
// the discriminant under the spellings returned by Discriminants.
func Kind(name string, s Schema) ErrorKind {
	return ErrorKind{name: name, schema: s, field: DefaultDiscriminant}
}

// Discriminant changes the payload field holding the discriminant.
func (k ErrorKind) Discriminant(field string) ErrorKind {
	k.field = field
	return k
}

// Tagged declares the discriminant value explicitly. Helpers then inject
// only this value instead of guessing spellings.
func (k ErrorKind) Tagged(value string) ErrorKind {
	k.tag = value
	return k
}

// Name is the key handlers pass to ErrorHelpers.New.
func (k ErrorKind) Name() string { return k.name }

// Schema validates payloads of this kind.
func (k ErrorKind) Schema() Schema { return k.schema }

// Field is the discriminant field, "code" unless set with Discriminant.
func (k ErrorKind) Field() string { return k.field }

// Discriminants returns the discriminant values a helper tries, in order.
func (k ErrorKind) Discriminants() []string {
	if k.tag != "" {
		return []string{k.tag}
	}
	return casing.Discriminants(k.name)
}

func (k ErrorKind) check() error {
	switch {
	case k.name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidKind)
	case k.schema == nil:
		return fmt.Errorf("%w: %q has no schema", ErrInvalidKind, k.name)
	case k.field == "":
		return fmt.Errorf("%w: %q has no discriminant field", ErrInvalidKind, k.name)
	}
	return nil
}
