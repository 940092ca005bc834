package main

import (
	"fmt"
	"path"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/funvibe/beacontau/internal/provider"
	"github.com/funvibe/beacontau/internal/record"
)

func newRunsCmd(c *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "lists the runs in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.openDataDir(cmd)
			if err != nil {
				return err
			}
			var rows [][]string
			for _, n := range d.Runs() {
				dir, err := d.RunDir(n)
				if err != nil {
					return err
				}
				rows = append(rows, []string{
					strconv.Itoa(n),
					path.Base(dir),
					string(provider.Detect(c.fs, dir)),
				})
			}
			printQueryOutput(cmd.OutOrStdout(), []string{"run", "directory", "format"}, rows)
			return nil
		},
	}
}

func newAttrsCmd(c *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "attrs [status|header|event]",
		Short: "lists the field names usable in expressions",
		Long: `
Lists field names per record kind in the order they are matched: longest
first. A bare name declared by several kinds resolves to the first kind
listed here.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := record.Kinds
			if len(args) == 1 {
				k, err := record.ParseKind(args[0])
				if err != nil {
					return err
				}
				kinds = []record.Kind{k}
			}
			reg := record.Default()
			var rows [][]string
			for _, k := range kinds {
				for _, f := range reg.Fields(k) {
					_, owners, _ := reg.Resolve(f.Name)
					note := ""
					if len(owners) > 1 && owners[0] != k {
						note = "shadowed, use " + k.Prefix() + "." + f.Name
					}
					rows = append(rows, []string{k.String(), f.Name, note})
				}
			}
			printQueryOutput(cmd.OutOrStdout(), []string{"kind", "field", "note"}, rows)
			return nil
		},
	}
}

func newGetCmd(c *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get RUN EXPR",
		Short: "prints the value of an expression for every entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openRun(cmd, args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			vals, err := a.Get(args[1])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, v := range vals {
				fmt.Fprintln(w, v.Inspect())
			}
			return nil
		},
	}
}

func newScanCmd(c *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan RUN EXPR[:EXPR...]",
		Short: "prints colon-separated expressions entry by entry",
		Long: `
Prints one row per entry with one column per colon-separated expression.
On a terminal the output pauses every page; answer q to stop.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openRun(cmd, args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			_, err = a.Scan(args[1])
			return err
		},
	}
}

func newDrawCmd(c *cliContext) *cobra.Command {
	return &cobra.Command{
		Use:   "draw RUN EXPR",
		Short: "plots an expression against entry number",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.openRun(cmd, args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			plot, err := a.Draw(args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), plot)
			return nil
		},
	}
}

func newEventCmd(c *cliContext) *cobra.Command {
	var noPlot bool
	cmd := &cobra.Command{
		Use:   "event RUN EVENT_NUMBER",
		Short: "shows the header and waveforms of one event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return errors.Newf("invalid event number %q", args[1])
			}
			a, err := c.openRun(cmd, args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			p, err := a.GetEvent(n)
			if err != nil {
				return err
			}

			var rows [][]string
			for _, f := range record.Default().Fields(record.KindHeader) {
				rows = append(rows, []string{f.Name, fmt.Sprint(f.Get(p.Header))})
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Run %d entry %d\n", a.Run(), p.Entry)
			printQueryOutput(w, []string{"field", "value"}, rows)
			if !noPlot {
				fmt.Fprintln(w, a.Plot(p))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "print the header only")
	return cmd
}

func newConvertCmd(c *cliContext) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert RUN --to FORMAT OUTPUT_DIR",
		Short: "copies a run into another storage format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := provider.ParseFormat(to)
			if err != nil {
				return err
			}
			if format == provider.FormatAuto {
				return errors.New("--to must be jsonl or sqlite")
			}
			n, err := parseRunArg(args[0])
			if err != nil {
				return err
			}
			d, err := c.openDataDir(cmd)
			if err != nil {
				return err
			}
			r, err := d.Reader(n)
			if err != nil {
				return err
			}
			defer r.Close()

			w, err := provider.Create(c.fs, format, args[1])
			if err != nil {
				return err
			}
			if err := provider.Copy(w, r); err != nil {
				w.Close()
				return errors.Wrapf(err, "converting run %d", n)
			}
			if err := w.Close(); err != nil {
				return err
			}
			level.Info(c.logger).Log("msg", "converted run", "run", n, "format", format, "dir", args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target format: jsonl or sqlite")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
