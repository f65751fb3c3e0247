package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"Lantern/engine"
	"Lantern/sources"
	"Lantern/utils"
)

var (
	apiMode   bool
	verbose   bool
	appEngine *engine.Engine
)

var rootCmd = &cobra.Command{
	Use:   "lantern",
	Short: "Lantern is a CLI tool for browsing and downloading webtoons.",
	Long: "Lantern is a CLI tool for browsing and downloading webtoons. It searches " +
		"series by keyword or genre, shows rankings and weekday schedules, lists " +
		"chapters and pages, and downloads chapters to disk.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Engine is normally injected by main; build one if not
		if appEngine == nil {
			cfg, err := engine.LoadConfig()
			if err != nil {
				fmt.Fprintf(os.Stderr, "config error: %v\n", err)
				cfg = engine.DefaultConfig()
			}
			appEngine = engine.New(cfg)
		}
		if verbose {
			appEngine.Logger.Verbose = true
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := cmd.Help(); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

// SetupEngine makes a pre-built engine available to all commands
func SetupEngine(e *engine.Engine) {
	appEngine = e
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lantern: %v\n", err)
		os.Exit(1)
	}
}

// fail reports a command error in the active output mode
func fail(err error) {
	if apiMode {
		utils.OutputJSON("error", nil, err)
		return
	}
	appEngine.Display.Error(fmt.Sprintf("Error: %v", err))
}

// sourceFor resolves a source ID, listing the known ones on a miss
func sourceFor(id string) (engine.Source, error) {
	src := sources.Get(id)
	if src == nil {
		known := sources.All()
		ids := make([]string, len(known))
		for i, s := range known {
			ids[i] = s.ID()
		}
		return nil, fmt.Errorf("source %q not found (available: %v)", id, ids)
	}
	return src, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&apiMode, "api", false, "Output machine-readable JSON only")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log engine activity to stderr")
}
