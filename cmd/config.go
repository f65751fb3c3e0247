package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"Lantern/engine"
	"Lantern/utils"
)

// configResult is the machine-readable shape of the active settings
type configResult struct {
	Path            string `json:"path"`
	FileExists      bool   `json:"file_exists"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	Retries         int    `json:"retries"`
	UserAgent       string `json:"user_agent,omitempty"`
	DownloadDir     string `json:"download_directory"`
	Concurrency     int    `json:"download_concurrency"`
	LogFile         string `json:"log_file"`
	Verbose         bool   `json:"verbose"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	Long: "Show the settings the engine is running with: defaults overlaid with " +
		"whatever ~/.lantern/config.yaml provides.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := appEngine.Config
		path := engine.ConfigPath()

		_, statErr := os.Stat(path)
		exists := statErr == nil

		if apiMode {
			utils.OutputJSON("success", configResult{
				Path:            path,
				FileExists:      exists,
				TimeoutSeconds:  cfg.HTTP.TimeoutSeconds,
				Retries:         cfg.HTTP.Retries,
				UserAgent:       cfg.HTTP.UserAgent,
				DownloadDir:     cfg.Download.Directory,
				Concurrency:     cfg.Download.Concurrency,
				LogFile:         cfg.Log.File,
				Verbose:         cfg.Log.Verbose,
				CacheTTLSeconds: cfg.CacheTTLSeconds,
			}, nil)
			return
		}

		display := appEngine.Display
		display.Header("Configuration")
		if exists {
			display.Detail("Config file", path)
		} else {
			display.Detail("Config file", fmt.Sprintf("%s (not present, defaults in effect)", path))
		}
		display.Detail("HTTP timeout", fmt.Sprintf("%ds", cfg.HTTP.TimeoutSeconds))
		display.Detail("HTTP retries", strconv.Itoa(cfg.HTTP.Retries))
		if cfg.HTTP.UserAgent != "" {
			display.Detail("User agent", cfg.HTTP.UserAgent)
		}
		display.Detail("Download directory", cfg.Download.Directory)
		display.Detail("Download concurrency", strconv.Itoa(cfg.Download.Concurrency))
		display.Detail("Log file", cfg.Log.File)
		display.Detail("Cache TTL", fmt.Sprintf("%ds", cfg.CacheTTLSeconds))
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the active configuration to disk",
	Long: "Write the settings currently in effect to ~/.lantern/config.yaml so " +
		"they can be edited. Existing files are overwritten.",
	Run: func(cmd *cobra.Command, args []string) {
		if err := engine.SaveConfig(appEngine.Config); err != nil {
			fail(fmt.Errorf("failed to write config: %w", err))
			return
		}

		path := engine.ConfigPath()
		if apiMode {
			utils.OutputJSON("success", map[string]string{"path": path}, nil)
			return
		}
		appEngine.Display.Success(fmt.Sprintf("Configuration written to %s", path))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}
