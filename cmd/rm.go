package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/kupo/internal/nav"
)

var rmForce bool

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm PATH...",
	Short: "Delete files and directories",
	Long: `Delete every PATH, directories included. Failures do not stop the
remaining deletions; each one is reported.

Examples:
  kupo rm old.log                  # Asks for confirmation
  kupo rm build dist --force       # Delete without confirmation
  kupo --backend r2 rm /tmp/a.txt  # Delete from the bucket`,
	Args: cobra.MinimumNArgs(1),
	RunE: removePaths,
}

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "force delete without confirmation")
}

func removePaths(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := newSession(ctx, cfg, "", cfg.UI.ShowHidden)
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		paths = append(paths, nav.ResolvePath(session.State.Dir, session.State.Home, arg))
	}
	session.State.Selection = nav.NewSelection(paths...)

	out := cmd.OutOrStdout()
	if !rmForce {
		fmt.Fprintf(out, "The following %d item(s) will be deleted:\n", len(paths))
		for _, p := range session.State.Selection.Paths() {
			fmt.Fprintf(out, "  - %s\n", p)
		}
		fmt.Fprint(out, "\nAre you sure? This cannot be undone! (y/N): ")

		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			fmt.Fprintln(out, "Delete cancelled.")
			return nil
		}
	}

	logrus.Infof("Deleting %d item(s)", len(paths))
	session.Dispatch(ctx, nav.DeleteSelected{})

	st := session.State.Status
	if st.Level != nav.StatusError {
		fmt.Fprintln(out, st.Text)
		return nil
	}

	var navErr *nav.Error
	if errors.As(st.Err, &navErr) && navErr.Kind == nav.PartialBatchFailure {
		deleted := len(paths) - len(navErr.Failed)
		fmt.Fprintf(out, "Deleted %d item(s) successfully, %d failed:\n", deleted, len(navErr.Failed))
		for _, p := range navErr.Failed {
			fmt.Fprintf(out, "  Error: %s\n", p)
		}
		return fmt.Errorf("some items could not be deleted")
	}
	return st.Err
}
