package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"Lantern/engine"
	"Lantern/sources"
	"Lantern/utils"
)

var (
	searchSource string
	searchPage   int
	searchGenre  string
	searchSort   string
)

// mangaResult is the API-mode shape of one search result
type mangaResult struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Source  string   `json:"source"`
	Authors []string `json:"authors,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Status  string   `json:"status,omitempty"`
	Cover   string   `json:"cover,omitempty"`
	URL     string   `json:"url,omitempty"`
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for series by keyword, or browse a genre",
	Long: `Search for series by keyword. With no query, browses a genre page
instead; pick the genre and sort order with --genre and --sort using the
site's display names (e.g. --genre 奇幻冒險 --sort 最近更新).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		options := engine.SearchOptions{
			Page:    searchPage,
			Filters: map[string]string{},
		}
		if searchGenre != "" {
			options.Filters["genre"] = searchGenre
		}
		if searchSort != "" {
			options.Filters["sort"] = searchSort
		}

		var selected []engine.Source
		if searchSource != "" {
			src, err := sourceFor(searchSource)
			if err != nil {
				fail(err)
				return
			}
			selected = []engine.Source{src}
		} else {
			selected = sources.All()
		}

		if apiMode {
			var results []mangaResult
			hasNext := false

			for _, src := range selected {
				page, err := src.Search(ctx, query, options)
				if err != nil {
					if len(selected) == 1 {
						utils.OutputJSON("error", nil, err)
						return
					}
					continue
				}

				for _, manga := range page.Items {
					results = append(results, mangaResult{
						ID:      utils.FormatID(src.ID(), manga.ID),
						Title:   manga.Title,
						Source:  src.ID(),
						Authors: manga.Authors,
						Tags:    manga.Tags,
						Status:  manga.Status,
						Cover:   manga.Cover,
						URL:     manga.URL,
					})
				}
				hasNext = hasNext || page.HasNextPage
			}

			utils.OutputJSON("success", map[string]interface{}{
				"query":         query,
				"page":          searchPage,
				"results":       results,
				"count":         len(results),
				"has_next_page": hasNext,
			}, nil)
			return
		}

		for _, src := range selected {
			page, err := src.Search(ctx, query, options)
			if err != nil {
				appEngine.Display.Error(fmt.Sprintf("%s: %v", src.ID(), err))
				continue
			}

			title := fmt.Sprintf("Results from %s (%s)", src.ID(), src.Name())
			appEngine.Display.MangaList(page, src.ID(), title)
		}
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchSource, "source", "", "Search a specific source only")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Result page to fetch")
	searchCmd.Flags().StringVar(&searchGenre, "genre", "", "Genre display name for browsing (no query)")
	searchCmd.Flags().StringVar(&searchSort, "sort", "", "Sort order display name (愛心排序, 最近更新)")
}
