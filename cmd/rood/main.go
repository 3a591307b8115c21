package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/708u/rood"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	terminal rood.Terminal      // nil = derived from the command's streams
	runner   rood.CommandRunner // nil = exec runner on the command's streams
	platform rood.Platform      // PlatformUnknown = config or detection
}

// Option configures newRootCmd.
type Option func(*options)

// WithTerminal sets the terminal capability (for testing).
func WithTerminal(t rood.Terminal) Option {
	return func(o *options) {
		o.terminal = t
	}
}

// WithCommandRunner sets the external command runner (for testing).
func WithCommandRunner(r rood.CommandRunner) Option {
	return func(o *options) {
		o.runner = r
	}
}

// WithPlatform overrides platform detection and configuration.
func WithPlatform(p rood.Platform) Option {
	return func(o *options) {
		o.platform = p
	}
}

// resolveDirectory resolves the target directory from -C flag value.
// Returns baseCwd if dirFlag is empty, otherwise resolves relative paths against baseCwd.
func resolveDirectory(dirFlag, baseCwd string) (string, error) {
	if dirFlag == "" {
		return baseCwd, nil
	}

	var dir string
	if filepath.IsAbs(dirFlag) {
		dir = dirFlag
	} else {
		dir = filepath.Join(baseCwd, dirFlag)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("cannot change to '%s': %w", dirFlag, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("cannot change to '%s': not a directory", dirFlag)
	}

	return dir, nil
}

func createLogger(w io.Writer, verbosity int) *slog.Logger {
	return slog.New(rood.NewCLIHandler(w, rood.LevelForVerbosity(verbosity)))
}

func newRootCmd(opts ...Option) *cobra.Command {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var (
		cwd       string
		dirFlag   string
		colorFlag string
		verbosity int
		platform  rood.Platform
		log       *slog.Logger
		runner    rood.CommandRunner
		out       rood.OutputManager
	)

	// resolvePath resolves a path argument against the -C directory.
	resolvePath := func(p string) string {
		if filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(cwd, p)
	}

	rootCmd := &cobra.Command{
		Use:           "rood",
		Short:         "Terminal output, prompts and OS helpers",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			originalCwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			cwd, err = resolveDirectory(dirFlag, originalCwd)
			if err != nil {
				return err
			}

			log = createLogger(cmd.ErrOrStderr(), verbosity)

			result, err := rood.LoadConfig(cwd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			for _, w := range result.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			cfg := result.Config

			colorMode := cfg.Color
			if cmd.Flags().Changed("color") {
				if colorMode, err = rood.ParseColorMode(colorFlag); err != nil {
					return err
				}
			}

			platform = cfg.ResolvePlatform()
			if o.platform != rood.PlatformUnknown {
				platform = o.platform
			}

			runner = o.runner
			if runner == nil {
				runner = &rood.ExecRunner{
					Stdin:  cmd.InOrStdin(),
					Stdout: cmd.OutOrStdout(),
					Stderr: cmd.ErrOrStderr(),
				}
			}

			outOpts := []rood.Option{
				rood.WithWriter(cmd.OutOrStdout()),
				rood.WithReader(cmd.InOrStdin()),
				rood.WithColorMode(colorMode),
				rood.WithPlatform(platform),
				rood.WithCommandRunner(runner),
				rood.WithLogger(log),
			}
			if o.terminal != nil {
				outOpts = append(outOpts, rood.WithTerminal(o.terminal))
			}

			out = rood.NewOutputManager(verbosity > 0 || cfg.Verbose, outOpts...).WithPadding(cfg.Indent)
			log.Debug("loaded config", rood.LogAttrKeyCategory.Attr(rood.LogCategoryConfig),
				slog.String("dir", cwd), slog.String("platform", platform.String()))
			return nil
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show the detected platform and architecture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			arch := rood.DetectArchitecture()

			out.Step("Host")
			details := out.Push()
			details.Progress("platform: " + platform.String())
			details.Progress("arch: " + arch.String())
			details.Debug("platform aliases: " + strings.Join(platform.Aliases(), ", "))
			details.Debug("arch aliases: " + strings.Join(arch.Aliases(), ", "))
			return nil
		},
	}

	notifyCmd := &cobra.Command{
		Use:   "notify <title> <message>",
		Short: "Send a desktop notification",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			notifier := rood.NewNotifier(runner, platform, log)

			out.Step("Sending notification")
			if err := notifier.Send(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			out.Success("Notification sent")
			return nil
		},
	}

	var checkFlag bool
	chmodCmd := &cobra.Command{
		Use:   "chmod <path>...",
		Short: "Make files executable",
		Long: `Make files executable by adding the execute permission bits.

Existing permission bits are kept. On Windows this is a no-op.

Use --check to report whether each file is executable without changing it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := rood.NewDefaultFiles(platform, log)

			for _, arg := range args {
				path := resolvePath(arg)
				if err := files.EnsureExists(path); err != nil {
					return err
				}

				if checkFlag {
					ok, err := files.IsExecutable(path)
					if err != nil {
						return err
					}
					state := "not executable"
					if ok {
						state = "executable"
					}
					out.Progress(arg + ": " + state)
					continue
				}

				out.Step("chmod +x " + arg)
				if err := files.MakeExecutable(path); err != nil {
					return err
				}
				out.Push().Success("done")
			}
			return nil
		},
	}
	chmodCmd.Flags().BoolVar(&checkFlag, "check", false, "Only report whether files are executable")

	var globFlag string
	replaceCmd := &cobra.Command{
		Use:   "replace <path> <old> <new>",
		Short: "Replace text in files",
		Long: `Replace every literal occurrence of <old> with <new>.

<path> is a file, or a directory when --glob is given:

  rood replace VERSION.txt 0.1.0 0.2.0
  rood replace . --glob "**/*.go" oldName newName`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := rood.NewDefaultFiles(platform, log)
			path, pattern, replacement := resolvePath(args[0]), args[1], args[2]

			if err := files.EnsureExists(path); err != nil {
				return err
			}

			if globFlag == "" {
				changed, err := files.ReplaceAll(path, pattern, replacement)
				if err != nil {
					return err
				}
				if changed {
					out.Success("updated " + args[0])
				} else {
					out.Progress("no occurrences in " + args[0])
				}
				return nil
			}

			out.Step(fmt.Sprintf("Replacing in %s (%s)", args[0], globFlag))
			changed, err := files.ReplaceAllGlob(path, globFlag, pattern, replacement)
			if err != nil {
				return err
			}
			nested := out.Push()
			for _, c := range changed {
				rel, relErr := filepath.Rel(path, c)
				if relErr != nil {
					rel = c
				}
				nested.Success("updated " + rel)
			}
			if len(changed) == 0 {
				nested.Progress("no files changed")
			}
			return nil
		},
	}
	replaceCmd.Flags().StringVar(&globFlag, "glob", "", "Treat <path> as a directory and rewrite files matching this pattern")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the terminal screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return out.Clear(cmd.Context())
		},
	}

	var (
		yesNoFlag    bool
		defaultFlag  bool
		passwordFlag bool
	)
	askCmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Prompt for input and print the answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if yesNoFlag && passwordFlag {
				return fmt.Errorf("--yes-no and --password cannot be used together")
			}

			switch {
			case yesNoFlag:
				ok, err := out.PromptYesNo(args[0], defaultFlag)
				if err != nil {
					return err
				}
				answer := "no"
				if ok {
					answer = "yes"
				}
				out.Progress(answer)
			case passwordFlag:
				secret, err := out.PromptPassword(args[0])
				if err != nil {
					return err
				}
				out.Success(fmt.Sprintf("read %d characters", len(secret)))
			default:
				answer, err := out.Prompt(args[0])
				if err != nil {
					return err
				}
				out.Progress(answer)
			}
			return nil
		},
	}
	askCmd.Flags().BoolVar(&yesNoFlag, "yes-no", false, "Ask a yes/no question")
	askCmd.Flags().BoolVar(&defaultFlag, "default", false, "Default answer for --yes-no")
	askCmd.Flags().BoolVar(&passwordFlag, "password", false, "Read the answer without echo")

	var forceFlag bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create .rood/settings.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := rood.NewDefaultInitCommand().Run(cwd, rood.InitOptions{Force: forceFlag})
			if err != nil {
				return err
			}
			result.Report(out)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing settings")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Version needs no config.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
			fmt.Fprintf(w, "version:\t%s\n", version)
			fmt.Fprintf(w, "commit:\t%s\n", commit)
			fmt.Fprintf(w, "date:\t%s\n", date)
			w.Flush()
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Verbose output (-v: debug channel and info logs, -vv: debug logs)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "directory", "C", "", "Run as if started in <path>")

	rootCmd.AddCommand(infoCmd, initCmd, notifyCmd, chmodCmd, replaceCmd, clearCmd, askCmd, versionCmd)

	return rootCmd
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "rood:", err)
		return 1
	}
	return 0
}
