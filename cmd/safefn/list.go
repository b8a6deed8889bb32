package main

import "github.com/spf13/cobra"

type entryView struct {
	Name    string   `json:"name" yaml:"name"`
	Mode    string   `json:"mode" yaml:"mode"`
	Summary string   `json:"summary" yaml:"summary"`
	Errors  []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available handlers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var views []entryView
			for _, e := range a.catalog.Entries() {
				v := entryView{Name: e.Name, Mode: e.Mode.String(), Summary: e.Summary}
				for _, k := range e.Decl.Kinds() {
					v.Errors = append(v.Errors, k.Name())
				}
				views = append(views, v)
			}
			return a.render(views)
		},
	}
}
