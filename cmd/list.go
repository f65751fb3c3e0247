package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"Lantern/engine"
	"Lantern/utils"
)

var (
	listSource string
	listPage   int
)

var listCmd = &cobra.Command{
	Use:   "list [listing-id]",
	Short: "Browse a source's named listings",
	Long: `Browse a source's named listings, such as the popularity ranking, the
weekday release schedule, or completed series. Run without arguments to see
which listings the source offers.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		src, err := sourceFor(listSource)
		if err != nil {
			fail(err)
			return
		}

		provider, ok := src.(engine.ListingProvider)
		if !ok {
			fail(fmt.Errorf("source %q has no listings", src.ID()))
			return
		}

		if len(args) == 0 {
			showListings(src, provider)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		listing := engine.Listing{ID: args[0]}
		page, err := provider.MangaForListing(ctx, listing, listPage)
		if err != nil {
			fail(err)
			return
		}

		if apiMode {
			results := make([]mangaResult, 0, len(page.Items))
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

			utils.OutputJSON("success", map[string]interface{}{
				"listing":       listing.ID,
				"page":          listPage,
				"results":       results,
				"count":         len(results),
				"has_next_page": page.HasNextPage,
			}, nil)
			return
		}

		title := fmt.Sprintf("%s, page %d", listing.ID, listPage)
		appEngine.Display.MangaList(page, src.ID(), title)
	},
}

// listingResult is the API-mode shape of one listing
type listingResult struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func showListings(src engine.Source, provider engine.ListingProvider) {
	listings := provider.Listings()

	if apiMode {
		results := make([]listingResult, len(listings))
		for i, l := range listings {
			results[i] = listingResult{ID: l.ID, Name: l.Name}
		}
		utils.OutputJSON("success", map[string]interface{}{
			"source":   src.ID(),
			"listings": results,
		}, nil)
		return
	}

	appEngine.Display.Listings(src.ID(), listings)
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listSource, "source", "wtn", "Source to browse")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Listing page to fetch")
}
