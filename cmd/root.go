package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/HaiFongPan/kupo/internal/config"
	"github.com/HaiFongPan/kupo/internal/executor"
	"github.com/HaiFongPan/kupo/internal/nav"
	"github.com/HaiFongPan/kupo/internal/preview"
	"github.com/HaiFongPan/kupo/internal/r2"
	"github.com/HaiFongPan/kupo/internal/store"
	"github.com/HaiFongPan/kupo/internal/tui"
	"github.com/HaiFongPan/kupo/internal/watch"
)

var (
	cfgFile      string
	verbose      bool
	quiet        bool
	backendFlag  string
	globalConfig *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kupo [DIR]",
	Short: "A keyboard driven terminal file manager",
	Long: `Kupo is a terminal file manager with a two pane layout: a sorted listing
on the left and a preview of the highlighted entry on the right. It can
browse the local filesystem or a Cloudflare R2 bucket as a directory tree.

Example usage:
  kupo                       # Browse the working directory
  kupo ~/src                 # Browse ~/src
  kupo --backend r2 /photos  # Browse a bucket
  kupo ls --filter '*.go'
  kupo exec --dir /tmp "mkdir build" "touch build/main.go"
  kupo rm old.log --force`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: runBrowser,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is "+config.GetDefaultConfigPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "enable quiet mode")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: local or r2 (overrides config)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error
	globalConfig, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if backendFlag != "" {
		globalConfig.General.Backend = backendFlag
		if err := config.Validate(globalConfig); err != nil {
			return fmt.Errorf("invalid --backend: %w", err)
		}
	}

	setupLogging()
	return nil
}

// setupLogging configures the global logger based on config and flags
func setupLogging() {
	level := globalConfig.Log.Level
	if verbose {
		level = "debug"
	} else if quiet {
		level = "error"
	}

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid log level %s, using info", level)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	// Logs go to a file so they never draw over the UI
	logFile := globalConfig.Log.File
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		logrus.Warnf("Failed to create log directory for %s: %v", logFile, err)
	} else {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logrus.Warnf("Failed to open log file %s: %v", logFile, err)
		} else {
			logrus.SetOutput(file)
		}
	}

	if globalConfig.Log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: quiet,
			FullTimestamp:    verbose,
		})
	}
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return globalConfig
}

// openStore creates the configured backend and returns it with the home
// directory "~" expands to
func openStore(ctx context.Context, cfg *config.Config) (store.Store, string, error) {
	switch cfg.General.Backend {
	case config.BackendR2:
		client, err := r2.NewClient(ctx, &cfg.R2)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create R2 client: %w", err)
		}
		return r2.NewStore(client, cfg.R2.BucketName), "/", nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			logrus.WithError(err).Warn("No home directory, ~ expands to /")
			home = "/"
		}
		return store.NewLocal(), home, nil
	}
}

// newExecutor wires the store to a preview loader
func newExecutor(cfg *config.Config, st store.Store) *executor.Executor {
	return executor.New(st, preview.NewLoader(st, cfg.UI.PreviewMaxBytes), cfg.Timeout())
}

// newSession prepares a synchronous session rooted at dir
func newSession(ctx context.Context, cfg *config.Config, dir string, showHidden bool) (*executor.Session, error) {
	st, home, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	start, err := resolveDir(cfg, home, dir)
	if err != nil {
		return nil, err
	}

	session := executor.NewSession(nav.New(home, showHidden), newExecutor(cfg, st), false)
	session.Dispatch(ctx, nav.EnterDirectory{Path: start})
	if err := session.State.Status.Err; err != nil {
		return nil, err
	}
	return session, nil
}

// resolveDir turns a user supplied directory into an absolute store path
func resolveDir(cfg *config.Config, home, dir string) (string, error) {
	if cfg.General.Backend == config.BackendR2 {
		if dir == "" {
			return "/", nil
		}
		return nav.ResolvePath("/", home, dir), nil
	}

	if dir == "" {
		return os.Getwd()
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return nav.ResolvePath(cwd, home, dir), nil
}

func statePath() string {
	path, err := config.DefaultStatePath()
	if err != nil {
		logrus.WithError(err).Debug("Session state disabled")
		return ""
	}
	return path
}

// runBrowser starts the interactive file browser
func runBrowser(cmd *cobra.Command, args []string) error {
	cfg := globalConfig
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, home, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	var session *config.SessionState
	path := statePath()
	if path != "" {
		session = config.LoadState(path)
	} else {
		session = &config.SessionState{}
	}

	dir, highlight := "", ""
	switch {
	case len(args) > 0:
		dir = args[0]
	case cfg.General.StartDir != "":
		dir = cfg.General.StartDir
	case cfg.General.RestoreLastDir && session.LastDir != "" && session.Backend == cfg.General.Backend:
		dir, highlight = session.LastDir, session.LastEntry
		cfg.UI.ShowHidden = cfg.UI.ShowHidden || session.ShowHidden
	}
	start, err := resolveDir(cfg, home, dir)
	if err != nil {
		return fmt.Errorf("failed to resolve start directory: %w", err)
	}

	// a file argument opens its directory with the file highlighted
	if entry, err := st.Stat(ctx, start); err == nil && !entry.IsDir() {
		start, highlight = filepath.Dir(start), start
	}

	var watcher *watch.Watcher
	if cfg.UI.Watch && cfg.General.Backend == config.BackendLocal {
		watcher, err = watch.New(watch.DefaultDebounce)
		if err != nil {
			logrus.WithError(err).Warn("Auto refresh unavailable")
		} else if err := watcher.Start(); err != nil {
			logrus.WithError(err).Warn("Auto refresh unavailable")
			watcher.Stop()
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	logrus.WithFields(logrus.Fields{"backend": st.Name(), "directory": start}).Info("Starting browser")

	model := tui.NewFileBrowserModel(tui.Options{
		Config:    cfg,
		Executor:  newExecutor(cfg, st),
		Watcher:   watcher,
		StartDir:  start,
		Highlight: highlight,
		Home:      home,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	state := model.State()
	if path != "" && state.Dir != "" {
		entry := ""
		if e, ok := state.Highlighted(); ok {
			entry = e.Path
		}
		session.Remember(cfg.General.Backend, state.Dir, entry)
		session.ShowHidden = state.ShowHidden
		if err := session.Save(path); err != nil {
			logrus.WithError(err).Warn("Failed to save session state")
		}
	}
	return nil
}
