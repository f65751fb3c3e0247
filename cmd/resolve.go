package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"Lantern/sources"
	"Lantern/utils"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [url]",
	Short: "Resolve a site URL into source IDs",
	Long: `Resolve a pasted site URL into the IDs the other commands accept. Series
URLs resolve to a manga ID, viewer URLs to a chapter ID.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		link, sourceID, err := sources.Resolve(ctx, args[0])
		if err != nil {
			fail(err)
			return
		}
		if link == nil {
			fail(fmt.Errorf("no source recognizes %q", args[0]))
			return
		}

		if apiMode {
			data := map[string]interface{}{
				"source":   sourceID,
				"manga_id": utils.FormatID(sourceID, link.MangaID),
			}
			if link.ChapterID != "" {
				data["chapter_id"] = utils.FormatID(sourceID, link.ChapterID)
			}
			utils.OutputJSON("success", data, nil)
			return
		}

		appEngine.Display.Detail("Source", sourceID)
		appEngine.Display.Detail("Manga ID", utils.FormatID(sourceID, link.MangaID))
		if link.ChapterID != "" {
			appEngine.Display.Detail("Chapter ID", utils.FormatID(sourceID, link.ChapterID))
		}
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
