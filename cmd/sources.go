package cmd

import (
	"github.com/spf13/cobra"

	"Lantern/sources"
	"Lantern/utils"
)

// sourceResult is the API-mode shape of one source entry
type sourceResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SiteURL     string `json:"site_url,omitempty"`
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the registered content sources",
	Long:  `List every registered content source with its ID, name and site.`,
	Run: func(cmd *cobra.Command, args []string) {
		all := sources.All()

		if apiMode {
			results := make([]sourceResult, len(all))
			for i, src := range all {
				results[i] = sourceResult{
					ID:          src.ID(),
					Name:        src.Name(),
					Description: src.Description(),
					SiteURL:     src.SiteURL(),
				}
			}
			utils.OutputJSON("success", map[string]interface{}{
				"sources": results,
				"count":   len(results),
			}, nil)
			return
		}

		appEngine.Display.SourceTable(all)
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
