package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"Lantern/engine"
	"Lantern/utils"
)

// chapterResult is the API-mode shape of one chapter
type chapterResult struct {
	ID        string  `json:"id"`
	Title     string  `json:"title,omitempty"`
	Number    float64 `json:"number"`
	Date      string  `json:"date,omitempty"`
	URL       string  `json:"url,omitempty"`
	Thumbnail string  `json:"thumbnail,omitempty"`
	Locked    bool    `json:"locked,omitempty"`
}

func chapterResults(sourceID string, chapters []engine.Chapter) []chapterResult {
	results := make([]chapterResult, len(chapters))
	for i, ch := range chapters {
		results[i] = chapterResult{
			ID:        utils.FormatID(sourceID, ch.ID),
			Title:     ch.Title,
			Number:    ch.Number,
			URL:       ch.URL,
			Thumbnail: ch.Thumbnail,
			Locked:    ch.Locked,
		}
		if ch.Date != nil {
			results[i].Date = ch.Date.Format(time.RFC3339)
		}
	}
	return results
}

var infoCmd = &cobra.Command{
	Use:   "info [source:manga-id]",
	Short: "Show detailed information about a series",
	Long:  `Show a series' full metadata from its detail page along with every chapter.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sourceID, mangaID, err := utils.ParseID(args[0])
		if err != nil {
			fail(err)
			return
		}

		src, err := sourceFor(sourceID)
		if err != nil {
			fail(err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		manga, err := src.GetManga(ctx, engine.Manga{ID: mangaID})
		if err != nil {
			fail(err)
			return
		}

		chapters, err := src.GetChapters(ctx, manga)
		if err != nil {
			fail(err)
			return
		}

		if apiMode {
			utils.OutputJSON("success", map[string]interface{}{
				"manga": mangaResult{
					ID:      utils.FormatID(src.ID(), manga.ID),
					Title:   manga.Title,
					Source:  src.ID(),
					Authors: manga.Authors,
					Tags:    manga.Tags,
					Status:  manga.Status,
					Cover:   manga.Cover,
					URL:     manga.URL,
				},
				"description": manga.Description,
				"chapters":    chapterResults(src.ID(), chapters),
				"count":       len(chapters),
			}, nil)
			return
		}

		appEngine.Display.MangaDetail(manga, src.ID(), src.Name())
		appEngine.Display.Section("Chapters")
		appEngine.Display.ChapterTable(chapters, src.ID())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
