package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"Lantern/engine"
	"Lantern/errors"
	"Lantern/utils"
)

var (
	downloadOutput      string
	downloadConcurrency int
)

var downloadCmd = &cobra.Command{
	Use:   "download [source:chapter-id...]",
	Short: "Download chapters to disk",
	Long: `Download one or more chapters by ID. Pages are saved as zero-padded image
files under <output>/<series>/<chapter>/. Chapter IDs come from the info
command or from resolve.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		outputDir := downloadOutput
		if outputDir == "" {
			outputDir = appEngine.Config.Download.Directory
		}
		if downloadConcurrency > 0 {
			appEngine.Download.Concurrency = downloadConcurrency
		}
		if apiMode {
			appEngine.Download.Progress = false
		}

		for _, combinedID := range args {
			sourceID, chapterID, err := utils.ParseID(combinedID)
			if err != nil {
				fail(err)
				return
			}

			src, err := sourceFor(sourceID)
			if err != nil {
				fail(err)
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			dir, err := downloadChapter(ctx, src, chapterID, outputDir)
			cancel()

			if err != nil {
				handleDownloadError(err, src, chapterID)
				return
			}

			if apiMode {
				utils.OutputJSON("success", map[string]interface{}{
					"chapter_id": combinedID,
					"source":     src.ID(),
					"output_dir": dir,
				}, nil)
			} else {
				appEngine.Display.Success(fmt.Sprintf("Downloaded chapter to %s", dir))
			}
		}
	},
}

// downloadChapter fetches the page list, fills in naming metadata and hands
// the job to the download service. Metadata lookups degrade gracefully: a
// chapter still downloads when the series detail fetch fails.
func downloadChapter(ctx context.Context, src engine.Source, chapterID, outputDir string) (string, error) {
	chapter := engine.Chapter{ID: chapterID}

	pages, err := src.GetPages(ctx, chapter)
	if err != nil {
		return "", err
	}

	job := engine.DownloadJob{
		MangaTitle: src.ID() + "-unknown",
		Pages:      pages,
		OutputDir:  outputDir,
	}

	if requester, ok := src.(engine.ImageRequester); ok {
		job.RequestFor = requester.ImageRequest
	}

	fillChapterMetadata(ctx, src, chapterID, &job)

	return appEngine.Download.DownloadChapter(ctx, job)
}

// fillChapterMetadata resolves the chapter ID back to its series to name the
// output directories. Any failure leaves the fallback names in place.
func fillChapterMetadata(ctx context.Context, src engine.Source, chapterID string, job *engine.DownloadJob) {
	handler, ok := src.(engine.DeepLinkHandler)
	if !ok {
		return
	}

	link, err := handler.ResolveURL(ctx, chapterID)
	if err != nil || link == nil || link.MangaID == "" {
		return
	}
	job.MangaTitle = src.ID() + "-" + link.MangaID

	manga, err := src.GetManga(ctx, engine.Manga{ID: link.MangaID})
	if err != nil {
		appEngine.Logger.Warn("series lookup for %s failed: %v", link.MangaID, err)
		return
	}
	if manga.Title != "" {
		job.MangaTitle = manga.Title
	}

	chapters, err := src.GetChapters(ctx, manga)
	if err != nil {
		appEngine.Logger.Warn("chapter lookup for %s failed: %v", link.MangaID, err)
		return
	}
	for _, ch := range chapters {
		if ch.ID == chapterID {
			job.ChapterTitle = ch.Title
			job.Number = ch.Number
			return
		}
	}
}

// handleDownloadError maps known failures onto friendlier messages
func handleDownloadError(err error, src engine.Source, chapterID string) {
	switch {
	case errors.IsNotFound(err):
		fail(fmt.Errorf("chapter %q not found on %s", chapterID, src.Name()))
	case errors.IsServerError(err):
		fail(fmt.Errorf("server error from %s, try again later: %v", src.Name(), err))
	case errors.IsRateLimited(err):
		fail(fmt.Errorf("rate limited by %s, try again later", src.Name()))
	default:
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			fail(fmt.Errorf("file system error, check the output directory: %v", pathErr))
			return
		}
		fail(err)
	}
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output directory (default from config)")
	downloadCmd.Flags().IntVar(&downloadConcurrency, "concurrency", 0, "Concurrent page downloads (default from config)")
}
