package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"commentvars/internal/settings"
)

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	settingsFile string
	dump         bool

	settings *settings.Settings
	logger   *log.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

func newRootCmd(a *app) *cobra.Command {
	defaults := settings.Defaults()

	root := &cobra.Command{
		Use:   "commentvars",
		Short: "Resolve and apply comment variables",
		Long: `commentvars reads a variables document (YAML) whose data section maps
keys to comment text. Keys become $COMMENT#KEY placeholders; values may alias
an earlier value or compose several placeholders separated by spaces.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.settingsFile, "settings", "", "settings file (default is ./"+settings.SettingsName+".yaml)")
	flags.StringP(settings.KeyConfig, "c", defaults.Config, "variables document")
	flags.String(settings.KeyVariant, defaults.Variant, "variation to apply")
	flags.String(settings.KeyLogLevel, defaults.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&a.dump, "dump", false, "dump resolved structures instead of printing them")

	root.AddCommand(
		newCheckCmd(a),
		newResolveCmd(a),
		newReverseCmd(a),
		newExpandCmd(a),
		newCompressCmd(a),
		newUsageCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	s, err := settings.Load(a.settingsFile, cmd.Flags())
	if err != nil {
		return err
	}

	level, err := s.Level()
	if err != nil {
		return err
	}

	a.settings = s
	a.logger = log.NewWithOptions(a.errOut, log.Options{
		Prefix: "commentvars",
		Level:  level,
	})

	if s.File != "" {
		a.logger.Debug("loaded settings", "file", s.File)
	}

	return nil
}
