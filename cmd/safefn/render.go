package main

import (
	"gopkg.in/yaml.v3"

	js "github.com/reoring/safefn/jsonschema"
)

// render writes v to stdout in the configured format.
func (a *app) render(v any) error {
	if a.settings.Format == "yaml" {
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	b, err := js.Marshal(v)
	if err != nil {
		return err
	}
	_, err = a.out.Write(b)
	return err
}
