// Package cli is the foundervalue command tree.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/foundervalue/internal/logger"
)

// Version is set at build time with -ldflags
var Version = "v0.1.0"

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "foundervalue",
	Short: "foundervalue - startup valuation estimates for founders",
	Long: `foundervalue estimates a startup's fair pre-money valuation range with
the methods investors use at each funding stage (Berkus, Scorecard, VC
Method, ARR multiples with the Rule of 40, DCF, comparable companies),
and grades investor offers against that range.

Every number comes from fixed formulas over your inputs and static
reference tables. An optional LLM narrative can explain a report but
never changes it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := viper.GetString("log.level")
		if verbose {
			level = "debug"
		}
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger.SetLevel(level)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debugf("using config file: %s", used)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "foundervalue %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.foundervalue/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig loads .env, then the config file and FOUNDERVALUE_* variables
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("load .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Warnf("finding home directory: %v", err)
		} else {
			viper.AddConfigPath(filepath.Join(home, ".foundervalue"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("FOUNDERVALUE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			logger.Warnf("read config: %v", err)
		}
	}
}
