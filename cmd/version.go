package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"Lantern/utils"
)

// Version is stamped by the build; "dev" otherwise
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version and runtime information for Lantern.`,
	Run: func(cmd *cobra.Command, args []string) {
		if apiMode {
			utils.OutputJSON("success", map[string]string{
				"version":    Version,
				"go_version": runtime.Version(),
				"os":         runtime.GOOS,
				"arch":       runtime.GOARCH,
			}, nil)
			return
		}

		appEngine.Display.Detail("Version", Version)
		appEngine.Display.Detail("Go version", runtime.Version())
		appEngine.Display.Detail("OS/Arch", runtime.GOOS+"/"+runtime.GOARCH)
		appEngine.Display.Detail("Log file", appEngine.Config.Log.File)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
