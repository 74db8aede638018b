package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/kupo/internal/nav"
	"github.com/HaiFongPan/kupo/internal/utils"
)

var (
	lsFilter string
	lsAll    bool
)

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls [DIR]",
	Short: "List a directory without the interactive browser",
	Long: `List a directory in the same order the browser shows it, with the sort
index the digit keys jump to.

Examples:
  kupo ls                    # List the working directory
  kupo ls ~/src --all        # Include dot files
  kupo ls --filter '*.go'    # Glob filter
  kupo ls --filter read      # Case insensitive substring filter`,
	Args: cobra.MaximumNArgs(1),
	RunE: listDir,
}

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().StringVarP(&lsFilter, "filter", "f", "", "glob or substring filter")
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "show hidden entries")
}

func listDir(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var dir string
	if len(args) > 0 {
		dir = args[0]
	}

	session, err := newSession(ctx, cfg, dir, lsAll || cfg.UI.ShowHidden)
	if err != nil {
		return err
	}
	if lsFilter != "" {
		session.Dispatch(ctx, nav.ApplyFilter{Pattern: lsFilter})
	}

	logrus.WithFields(logrus.Fields{
		"directory": session.State.Dir,
		"filter":    lsFilter,
		"entries":   len(session.State.Visible()),
	}).Debug("Listing directory")

	return outputTable(cmd.OutOrStdout(), session.State.Visible())
}

func outputTable(out io.Writer, entries []nav.Entry) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "#\tNAME\tSIZE\tMODIFIED")
	for _, e := range entries {
		name, size := e.Name, utils.FormatSize(e.Size)
		if e.IsDir() {
			name += "/"
			size = "-"
		}
		modified := "-"
		if !e.ModTime.IsZero() {
			modified = utils.FormatModTime(e.ModTime)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.SortIndex, name, size, modified)
	}

	return w.Flush()
}
