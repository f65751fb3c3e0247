package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"Lantern/engine"
	"Lantern/utils"
)

// pageResult is the API-mode shape of one page
type pageResult struct {
	Index    int               `json:"index"`
	URL      string            `json:"url"`
	Filename string            `json:"filename,omitempty"`
	Headers  map[string]string `json:"headers,omitempty"`
}

var pagesCmd = &cobra.Command{
	Use:   "pages [source:chapter-id]",
	Short: "List the image URLs of a chapter",
	Long: `List the image URLs of a chapter in reading order. Chapter IDs come
from the info command; each page carries the request headers the site needs.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sourceID, chapterID, err := utils.ParseID(args[0])
		if err != nil {
			fail(err)
			return
		}

		src, err := sourceFor(sourceID)
		if err != nil {
			fail(err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		pages, err := src.GetPages(ctx, engine.Chapter{ID: chapterID})
		if err != nil {
			fail(err)
			return
		}

		if apiMode {
			results := make([]pageResult, len(pages))
			for i, page := range pages {
				results[i] = pageResult{
					Index:    page.Index,
					URL:      page.URL,
					Filename: page.Filename,
					Headers:  page.Headers,
				}
			}
			utils.OutputJSON("success", map[string]interface{}{
				"chapter": chapterID,
				"pages":   results,
				"count":   len(results),
			}, nil)
			return
		}

		appEngine.Display.PageList(pages)
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
