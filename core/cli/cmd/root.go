package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/smartbridge/smartbridge/core/cli/internal"
	"github.com/smartbridge/smartbridge/core/config"
	"github.com/smartbridge/smartbridge/core/logger"
)

// version stores the version string, set via SetVersion()
var version = "dev"

// SetVersion sets the version string (called from main.init())
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version string
func GetVersion() string {
	return version
}

var (
	configFile  string
	port        int
	database    string
	logLevel    int
	verbose     bool
	logTags     string
	logFile     bool
	showVersion bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "smartbridge",
	Short:         "Smart Bridge\nAsk questions about your database in plain language",
	SilenceUsage:  true,
	SilenceErrors: true, // Errors are already logged, suppress Cobra's error output
}

// completionCmd is a hidden command used by install scripts to generate shell completions
var completionCmd = &cobra.Command{
	Use:          "completion [bash|zsh|fish|powershell]",
	Short:        "Generate shell completion script",
	Hidden:       true,
	ValidArgs:    []string{"bash", "zsh", "fish", "powershell"},
	Args:         cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletion(os.Stdout)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(completionCmd)
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print the installed version and exit")

	// Root command should only print help.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		}
		return cmd.Help()
	}
}

// addConfigFlags registers the flags shared by every command that loads configuration.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "file", "f", "", "Path to the configuration file (default: ./"+config.DefaultPath+" when present)")
	cmd.Flags().StringVar(&database, "db", "", "SQLite file or postgres:// / mysql:// URL (overrides config file)")
	cmd.Flags().IntVar(&logLevel, "log-level", 0, "Log level: 1=ERROR, 2=WARN, 3=INFO, 4=DEBUG (overrides config file)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "", false, "Enable verbose logging (sets log level to DEBUG)")
	cmd.Flags().StringVar(&logTags, "log-tags", "", "Filter logs by tags (comma-separated, use -tag to exclude). Overrides SMARTBRIDGE_LOG_TAGS env var")
}

// loadConfig sets up logging, loads .env files and resolves the configuration
// from file, environment and flags.
func loadConfig() (*config.Config, error) {
	// Set an early level so config loading logs respect the flags; the config
	// file level applies afterwards when no flag was given.
	logger.SetLogLevel(internal.ResolveLogLevel(verbose, logLevel, nil))

	tagFilter := logTags
	if tagFilter == "" {
		tagFilter = os.Getenv("SMARTBRIDGE_LOG_TAGS")
	}
	if tagFilter != "" {
		logger.SetTagFilter(tagFilter)
	}

	envDir := ""
	if configFile != "" {
		envDir = filepath.Dir(configFile)
	}
	LoadEnvFiles(envDir)

	cfg, err := internal.LoadConfig(configFile, internal.Overrides{
		Port:     port,
		Database: database,
		LogLevel: logLevel,
		Verbose:  verbose,
	})
	if err != nil {
		var validationErr *config.ValidationErrors
		if errors.As(err, &validationErr) {
			logger.New("config").PrintValidationErrors(validationErr.Errors)
		}
		return nil, logger.WithTag("config", err)
	}

	logger.SetLogLevel(internal.ResolveLogLevel(verbose, logLevel, cfg))
	return cfg, nil
}

// LoadEnvFiles attempts to load .env files from multiple locations.
// It tries each location in order and stops at the first successful load.
// Priority order:
// 1. From the provided directory (if not empty)
// 2. From the current working directory
// 3. From the directory containing the executable binary
// System environment variables always take precedence over .env file values.
func LoadEnvFiles(fromDir string) {
	envFiles := []string{".env.local", ".env.development", ".env"}

	if fromDir != "" {
		for _, envFile := range envFiles {
			if err := godotenv.Load(filepath.Join(fromDir, envFile)); err == nil {
				return
			}
		}
	}

	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			return
		}
	}

	if execPath, err := os.Executable(); err == nil {
		if realPath, err := filepath.EvalSymlinks(execPath); err == nil {
			execPath = realPath
		}
		execDir := filepath.Dir(execPath)
		for _, envFile := range envFiles {
			if err := godotenv.Load(filepath.Join(execDir, envFile)); err == nil {
				return
			}
		}
	}
}
