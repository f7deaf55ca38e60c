package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Akashdeep-Patra/bgs/internal/app"
	"github.com/Akashdeep-Patra/bgs/internal/config"
	"github.com/Akashdeep-Patra/bgs/internal/git"
	"github.com/Akashdeep-Patra/bgs/internal/log"
	"github.com/Akashdeep-Patra/bgs/internal/reconcile"
	"github.com/Akashdeep-Patra/bgs/internal/session"
	"github.com/Akashdeep-Patra/bgs/internal/watcher"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cacheTTL bounds how long engine reads are reused. Every refresh
// invalidates the cache, so this only deduplicates reads within one cycle.
const cacheTTL = 2 * time.Second

func init() {
	// bgs mostly waits on git subprocesses and file events; two OS
	// threads are plenty. An explicit GOMAXPROCS is respected.
	if os.Getenv("GOMAXPROCS") == "" {
		runtime.GOMAXPROCS(min(runtime.NumCPU(), 2))
	}

	// Keep resident memory low; the status of even a large repository
	// fits comfortably under this.
	debug.SetMemoryLimit(50 * 1024 * 1024) // 50 MiB
}

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bgs: %v\n", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bgs [path]",
		Short: "A live git status dashboard for the terminal",
		Long: `bgs shows the staged and unstaged changes of a git work tree and the
diff of the selected file, and keeps both up to date as files change.

Files can be staged, unstaged and discarded from the dashboard; the last
stage or unstage can be undone.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"bgs %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	flags := rootCmd.Flags()
	flags.Bool("poll", false, "Poll for changes instead of watching the file system")
	flags.Bool("no-mouse", false, "Disable mouse support")
	flags.String("debug-log", "", "Write a debug log to this file")
	flags.String("config", "", "Read configuration from this file")

	return rootCmd
}

func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "bgs %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `bgs completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for bgs.

Examples:
  # Bash (add to ~/.bashrc)
  bgs completion bash > /etc/bash_completion.d/bgs

  # Zsh (add to ~/.zshrc before compinit)
  bgs completion zsh > "${fpath[1]}/_bgs"

  # Fish
  bgs completion fish > ~/.config/fish/completions/bgs.fish

  # PowerShell
  bgs completion powershell > bgs.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	file, _ := flags.GetString("config")
	cfg, err := config.Load(file)
	if err != nil {
		return nil, err
	}
	if poll, _ := flags.GetBool("poll"); poll {
		cfg.ForcePolling = true
	}
	if noMouse, _ := flags.GetBool("no-mouse"); noMouse {
		cfg.Mouse = false
	}
	if logFile, _ := flags.GetString("debug-log"); logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if err := log.Setup(cfg.LogFile); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "bgs: debug log disabled: %v\n", err)
	}
	defer func() { _ = log.Close() }()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	cliSvc, err := git.Open(repoPath)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}
	eng := git.NewCachedService(cliSvc, cacheTTL)

	sess, err := session.New(eng, session.Options{FlashTimeout: cfg.FlashTimeout})
	if err != nil {
		return err
	}

	var events <-chan struct{}
	if !cfg.ForcePolling {
		w, err := watcher.Start(cliSvc.RepoRoot(), cliSvc.GitDir())
		if err != nil {
			log.Warn("file watcher unavailable, polling", "err", err, "interval", cfg.PollInterval)
		} else {
			defer w.Stop()
			events = w.Events()
		}
	}
	loop := reconcile.New(events, reconcile.Options{
		Debounce:     cfg.Debounce,
		PollInterval: cfg.PollInterval,
		BusyTimeout:  cfg.BusyTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ForcePolling: cfg.ForcePolling,
	})

	log.Info("starting", "version", version, "root", cliSvc.RepoRoot(), "polling", loop.Polling())

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	_, err = tea.NewProgram(app.New(sess, loop, cfg, cliSvc.RepoRoot()), opts...).Run()
	return err
}
