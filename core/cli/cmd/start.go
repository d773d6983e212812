package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/smartbridge/smartbridge/core/config"
	"github.com/smartbridge/smartbridge/core/logger"
	"github.com/smartbridge/smartbridge/core/runtime"
)

const reloadDebounce = 500 * time.Millisecond

var watch bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:           "start",
	Short:         "Run the Smart Bridge HTTP server",
	RunE:          startServer,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true, // Errors are already logged, suppress Cobra's error output
}

func init() {
	rootCmd.AddCommand(startCmd)

	addConfigFlags(startCmd)
	startCmd.Flags().IntVarP(&port, "port", "p", 0, "Server port (overrides config file and SMARTBRIDGE_SERVER_PORT)")
	startCmd.Flags().BoolVar(&logFile, "log-file", false, "Stream logs to file in /tmp/.smartbridge/logs/")
	startCmd.Flags().BoolVar(&watch, "watch", false, "Reload model settings when the config file or .env changes")
}

func startServer(cmd *cobra.Command, args []string) error {
	rt, err := PrepareRuntime(cmd.Context())
	if err != nil {
		return err
	}
	if watch {
		return startServerWithWatch(rt)
	}
	return rt.Start()
}

// PrepareRuntime loads config and creates a runtime ready to start
func PrepareRuntime(ctx context.Context) (*runtime.Runtime, error) {
	log := logger.New("main")

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if logFile {
		filePath, err := logger.SetLogFile()
		if err != nil {
			return nil, log.Errorf("failed to initialize log file: %w", err)
		}
		log.Infof("Log file: %s", filePath)
	}

	log.Infof("Configuration loaded")
	log.Debugf("Database: %s", describeDatabase(cfg))
	log.Debugf("Model: %s (%s)", cfg.LLM.Model, cfg.LLM.Provider)

	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := runtime.NewRuntime(ctx, cfg, runtime.WithVersion(GetVersion()))
	if err != nil {
		return nil, err
	}
	log.Infof("Runtime initialized")

	return rt, nil
}

func describeDatabase(cfg *config.Config) string {
	if cfg.Database.DSN != "" {
		return "dsn"
	}
	return cfg.Database.Path
}

func startServerWithWatch(rt *runtime.Runtime) error {
	log := logger.New("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return log.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	paths := watchedPaths()
	// Watch directories so editors that replace files on save keep triggering.
	dirs := map[string]struct{}{}
	for _, p := range paths {
		dirs[filepath.Dir(p)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return log.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	reload := make(chan struct{}, 1)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var debounce *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !isWatched(paths, event.Name) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(reloadDebounce, func() {
					select {
					case reload <- struct{}{}:
					default:
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warnf("Watcher error: %v", err)
			}
		}
	}()

	if err := rt.StartAsync(); err != nil {
		return err
	}
	log.Infof("Watching %d file(s) for model setting changes", len(paths))

	for {
		select {
		case <-sigChan:
			return rt.Stop()
		case <-reload:
			log.Infof("Changes detected, reloading model settings")
			overloadEnvFiles(paths[1:])
			cfg, err := loadConfig()
			if err != nil {
				log.Warnf("Reload failed, keeping current settings: %v", err)
				continue
			}
			if err := rt.ReloadConfig(cfg); err != nil {
				log.Warnf("Reload failed, keeping current settings: %v", err)
			}
		}
	}
}

// watchedPaths lists the config file and .env files whose edits trigger a reload.
func watchedPaths() []string {
	configPath := configFile
	if configPath == "" {
		configPath = config.DefaultPath
	}
	dir := filepath.Dir(configPath)

	paths := []string{configPath}
	for _, name := range []string{".env.local", ".env.development", ".env"} {
		paths = append(paths, filepath.Join(dir, name))
	}

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		out = append(out, p)
	}
	return out
}

// overloadEnvFiles re-reads .env files so edited values replace ones loaded at startup.
func overloadEnvFiles(paths []string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
		}
	}
}

func isWatched(paths []string, name string) bool {
	if abs, err := filepath.Abs(name); err == nil {
		name = abs
	}
	for _, p := range paths {
		if p == name {
			return true
		}
	}
	return false
}
