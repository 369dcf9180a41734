// Command fwc-sim runs the Flight Warning Computer pair against scripted
// cockpit scenarios and publishes what the computers present.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fwc-sim",
	Short: "Flight Warning Computer simulator",
	Long: `fwc-sim drives a pair of Flight Warning Computers from a YAML scenario,
optionally overlaid with cockpit push buttons read from GPIO, and publishes
flight phase, memo and warning changes to MQTT, Kafka and an HTTP status page.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulator daemon",
	Long: `Run plays the configured scenario in real time, one update per tick,
and keeps publishing until SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>",
	Short: "Run a scenario offline and check its expectations",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Print the cockpit push buttons read from GPIO and exit",
	Args:  cobra.NoArgs,
	RunE:  runPanel,
}

var replayQuiet bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (defaults plus FWC_* env when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	replayCmd.Flags().BoolVarP(&replayQuiet, "quiet", "q", false, "Only print step results")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(panelCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
