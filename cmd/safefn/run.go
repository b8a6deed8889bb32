package main

import (
	"errors"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run HANDLER [ARG...]",
		Short: "Call a handler and print its result",
		Long: `Call a handler and print its result as {data, error, isDefined}.

Each ARG is decoded as a JSON value; anything that is not valid JSON is
passed as a string, so 'safefn run speed fast' and 'safefn run speed "\"fast\""'
are equivalent. The exit status is 1 when the result carries an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.entry(args[0])
			if err != nil {
				return err
			}
			in := make([]any, 0, len(args)-1)
			for _, raw := range args[1:] {
				in = append(in, parseArg(raw))
			}
			res, err := e.Call(cmd.Context(), in...)
			if err != nil {
				return err
			}
			if err := a.render(res.Map()); err != nil {
				return err
			}
			if !res.OK() {
				return errCallFailed
			}
			return nil
		},
	}
}

// parseArg decodes raw as a single JSON value, keeping numbers as
// json.Number. Anything else is returned as the raw string.
func parseArg(raw string) any {
	dec := gojson.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return raw
	}
	return v
}
