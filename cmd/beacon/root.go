package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newRootCmd(c *cliContext) *cobra.Command {
	root := &cobra.Command{
		Use:   "beacon",
		Short: "explore BEACON run data",
		Long: `
Evaluates expressions over the Status, Header and Event records of BEACON
runs. Field names are written bare (readout_time) or qualified by record
kind (header.readout_time).
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&c.dataDir, "data-dir", "", "directory holding the run directories (default $BEACON_DATA_DIR, then beacon.yaml, then the working directory)")
	f.StringVar(&c.format, "format", "auto", "run storage format: jsonl, sqlite or auto")
	f.StringVar(&c.configPath, "config", "", "path to beacon.yaml (default: searched upwards from the working directory)")
	f.StringVar(&c.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		newRunsCmd(c),
		newAttrsCmd(c),
		newGetCmd(c),
		newScanCmd(c),
		newDrawCmd(c),
		newEventCmd(c),
		newConvertCmd(c),
	)
	return root
}

func parseRunArg(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.Newf("invalid run number %q", s)
	}
	return n, nil
}
