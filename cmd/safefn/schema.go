package main

import "github.com/spf13/cobra"

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema HANDLER",
		Short: "Print the JSON Schema of a handler's input, output, and errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entry(args[0])
			if err != nil {
				return err
			}
			desc, err := e.Decl.Describe()
			if err != nil {
				return err
			}
			return a.render(desc)
		},
	}
}
