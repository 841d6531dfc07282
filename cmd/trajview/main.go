package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"trajview/internal/config"
	"trajview/internal/logging"
	"trajview/internal/trajectory"
)

// Exit codes.
const (
	exitOK               = 0
	exitFailure          = 1
	exitInvalidInput     = 2
	exitMalformedFile    = 3
	exitDegenerateConfig = 4
)

var (
	// Global flags
	verbose    bool
	configPath string
	inputFile  string
	selectFlag string
	axesFlag   string
	watchFlag  bool
	forceFlag  bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "trajview",
	Short: "Plot simulated body trajectories in an interactive 3D view",
	Long: `trajview reads a trajectory file written by the solar system simulation
({"Objects": [...], "Dimensions": D, "Trajectory": [...]}), reshapes the
interleaved samples into one path per object and shows them in a rotatable
3D view. The view stays open until you press q.

Run without arguments to plot every object in ./trajectoryData.json.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		base, err := logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger = base.With(zap.String("run_id", uuid.NewString()))
		logging.Named(logger, logging.CategoryBoot).Debug("config loaded",
			zap.String("config", configPath),
			zap.String("input", cfg.Input),
			zap.String("select", cfg.Select))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runView,
}

// inspectCmd prints a summary of the trajectory file
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a trajectory file without opening the viewer",
	Long: `Loads, validates and reshapes the trajectory file, then prints the
objects, dimension and sample counts, and per-object start, end and bounds.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

// configCmd groups config file commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the trajview config file",
}

// configInitCmd writes the effective configuration
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective configuration to the config file",
	Long: `Writes the configuration in effect (defaults, then the existing config
file, environment and flags) to the path given by --config. An existing
file is kept unless --force is set.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "Trajectory file (default: trajectoryData.json)")

	rootCmd.Flags().StringVarP(&selectFlag, "select", "s", "", `Objects to plot: "all", an index or a name`)
	rootCmd.Flags().StringVar(&axesFlag, "axes", "", `Dimensions plotted as X,Y,Z, e.g. "0,1,2"; "-" pins an axis to zero`)
	rootCmd.Flags().BoolVar(&watchFlag, "watch", false, "Reload the file when it changes")

	configInitCmd.Flags().BoolVar(&forceFlag, "force", false, "Replace an existing config file")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(inspectCmd, configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := cfg.Save(configPath, forceFlag); err != nil {
		return err
	}
	logging.Named(logger, logging.CategoryBoot).Debug("config written", zap.String("config", configPath))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", configPath)
	return nil
}

// applyFlags lets explicitly set flags override the config file and environment.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("file") {
		c.Input = inputFile
	}
	if flags.Changed("select") {
		c.Select = selectFlag
	}
	if flags.Changed("axes") {
		c.Axes = axesFlag
	}
	if flags.Changed("watch") {
		c.Watch = watchFlag
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, trajectory.ErrDegenerateConfig):
		return exitDegenerateConfig
	case errors.Is(err, trajectory.ErrMalformedFile):
		return exitMalformedFile
	case errors.Is(err, trajectory.ErrInvalidInput):
		return exitInvalidInput
	default:
		return exitFailure
	}
}
