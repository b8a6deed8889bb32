package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reoring/safefn"
	"github.com/reoring/safefn/internal/config"
	"github.com/reoring/safefn/internal/demo"
	"github.com/reoring/safefn/internal/logx"
)

// envPrefix prefixes every environment variable read by the CLI, e.g.
// SAFEFN_FORMAT or SAFEFN_LOG_DEBUG.
const envPrefix = "SAFEFN"

// errCallFailed is returned after a failed call's result has been printed.
var errCallFailed = errors.New("call failed")

type settings struct {
	safefn.Config
	Log    logx.Config
	Format string `default:"json"`
}

type app struct {
	out, errOut io.Writer

	envFile      string
	format       string
	debug        bool
	pretty       bool
	helpersFirst bool

	settings settings
	log      zerolog.Logger
	catalog  *demo.Catalog
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:   "safefn",
		Short: "Call handlers wrapped with validated inputs, outputs, and errors",
		Long: `safefn serves a small catalog of handlers built with the safefn engine.

Every call returns a result triple (data, error, isDefined). Arguments are
decoded as JSON when possible and passed as plain strings otherwise.

Examples:
  safefn list
  safefn run speed fast
  safefn run divide 5 0 --format yaml
  safefn schema lookup`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.init(cmd) },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env", "", "path to a .env file (default: ./.env when present)")
	pf.StringVarP(&a.format, "format", "o", "", "output format: json or yaml")
	pf.BoolVar(&a.debug, "debug", false, "log debug events of every call to stderr")
	pf.BoolVar(&a.pretty, "pretty", false, "human-readable log output")
	pf.BoolVar(&a.helpersFirst, "helpers-first", false, "pass error helpers before positional arguments")

	root.AddCommand(a.listCmd(), a.runCmd(), a.schemaCmd())
	return root
}

// init loads settings from the environment, lets explicit flags win, and
// binds the catalog.
func (a *app) init(cmd *cobra.Command) error {
	s, err := config.New[settings](envPrefix, a.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("format") {
		s.Format = a.format
	}
	if flags.Changed("debug") {
		s.Log.Debug = a.debug
	}
	if flags.Changed("pretty") {
		s.Log.PrettyFormat = a.pretty
	}
	if flags.Changed("helpers-first") {
		s.HelpersFirst = a.helpersFirst
	}
	switch s.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q (want json or yaml)", s.Format)
	}

	a.settings = *s
	a.log = logx.New(a.errOut, s.Log)
	a.catalog = demo.NewCatalog(safefn.WithConfig(s.Config), safefn.WithLogger(a.log))
	a.log.Debug().Str("format", s.Format).Bool("helpers_first", s.HelpersFirst).Msg("settings loaded")
	return nil
}

func (a *app) entry(name string) (demo.Entry, error) {
	e, ok := a.catalog.Lookup(name)
	if !ok {
		return demo.Entry{}, fmt.Errorf("unknown handler %q (see 'safefn list')", name)
	}
	return e, nil
}
