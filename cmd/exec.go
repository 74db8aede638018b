package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/kupo/internal/nav"
)

var execDir string

// execCmd represents the exec command
var execCmd = &cobra.Command{
	Use:   "exec LINE...",
	Short: "Run command bar lines without the interactive browser",
	Long: `Run each LINE as if it were typed into the command bar, in order, then
print the directory the session ended in. Stops at the first failing line.

Commands:
  cd PATH      Go to the directory at PATH
  touch PATH   Create an empty file at PATH
  mkdir PATH   Create a directory at PATH
  q, quit      Stop processing further lines

Examples:
  kupo exec "mkdir build" "touch build/main.go"
  kupo exec --dir /tmp "cd ~/src" "mkdir scratch"`,
	Args: cobra.MinimumNArgs(1),
	RunE: execLines,
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().StringVarP(&execDir, "dir", "d", "", "directory to start in (default is the working directory)")
}

func execLines(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session, err := newSession(ctx, cfg, execDir, cfg.UI.ShowHidden)
	if err != nil {
		return err
	}

	for _, line := range args {
		seq := session.State.StatusSeq()
		session.Exec(ctx, line)

		st := session.State.Status
		if session.State.StatusSeq() != seq {
			if st.Level == nav.StatusError {
				return fmt.Errorf("%s: %w", line, st.Err)
			}
			logrus.WithField("command", line).Info(st.Text)
		}
		if session.Quit() {
			break
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), session.State.Dir)
	return nil
}
