package main

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/funvibe/beacontau/internal/analyzer"
	"github.com/funvibe/beacontau/internal/config"
	"github.com/funvibe/beacontau/internal/datadir"
	"github.com/funvibe/beacontau/internal/provider"
)

// cliContext holds the flag values and process handles shared by every
// command.
type cliContext struct {
	dataDir    string
	format     string
	configPath string
	logLevel   string

	fs         afero.Fs
	stdin      io.Reader
	logOut     io.Writer
	isTerminal func() bool

	cfg    *config.Config
	logger log.Logger
}

func newCLIContext() *cliContext {
	return &cliContext{
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		logOut: os.Stderr,
		isTerminal: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
}

// setup loads the config and builds the logger. Flags override the config.
func (c *cliContext) setup(cmd *cobra.Command) error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadConfig(c.configPath)
	} else {
		var cwd string
		if cwd, err = os.Getwd(); err == nil {
			c.cfg, _, err = config.Load(cwd)
		}
	}
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("format") && c.cfg.Format != "" {
		c.format = c.cfg.Format
	}
	if !cmd.Flags().Changed("log-level") && c.cfg.LogLevel != "" {
		c.logLevel = c.cfg.LogLevel
	}

	opt, err := levelOption(c.logLevel)
	if err != nil {
		return err
	}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(c.logOut))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	c.logger = level.NewFilter(logger, opt)
	return nil
}

func levelOption(s string) (level.Option, error) {
	switch strings.ToLower(s) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	}
	return nil, errors.Newf("unknown log level %q", s)
}

func (c *cliContext) openDataDir(cmd *cobra.Command) (*datadir.DataDir, error) {
	format, err := provider.ParseFormat(c.format)
	if err != nil {
		return nil, err
	}
	root, err := datadir.Resolve(c.dataDir, c.cfg.DataDir, c.logger)
	if err != nil {
		return nil, err
	}
	return datadir.Open(c.fs, root,
		datadir.WithFormat(format),
		datadir.WithLogger(c.logger),
		datadir.WithAnalyzerOptions(
			analyzer.WithPageSize(c.cfg.PageSize),
			analyzer.WithPlotSize(c.cfg.Plot.Width, c.cfg.Plot.Height),
			analyzer.WithIO(c.stdin, cmd.OutOrStdout(), c.isTerminal),
		),
	)
}

func (c *cliContext) openRun(cmd *cobra.Command, arg string) (*analyzer.Analyzer, error) {
	n, err := parseRunArg(arg)
	if err != nil {
		return nil, err
	}
	d, err := c.openDataDir(cmd)
	if err != nil {
		return nil, err
	}
	return d.Run(n)
}
