// Command covkern lists covariance kernels, assembles covariance
// matrices and checks that the registered kernels yield positive
// semidefinite matrices.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "covkern",
	Short: "Explore covariance kernels",
	Long: `covkern works with the registered covariance kernels over scalar inputs:
squared-exponential, Matérn 1/2, 3/2 and 5/2, white noise, periodic and
linear, and their sums and products.`,
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
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.AddCommand(listCmd, covCmd, selfcheckCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
