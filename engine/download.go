package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// DownloadService saves chapter pages to disk with bounded concurrency
type DownloadService struct {
	Concurrency int
	Throttle    time.Duration
	Client      *http.Client
	Logger      *LoggerService
	Progress    bool
}

// DownloadJob describes one chapter download. RequestFor builds the request
// for each page URL when the source needs custom headers; page-level Headers
// are applied on top.
type DownloadJob struct {
	MangaTitle   string
	ChapterTitle string
	Number       float64
	Pages        []Page
	OutputDir    string
	RequestFor   func(ctx context.Context, url string) (*http.Request, error)
}

// DownloadChapter fetches every page of the job into
// <OutputDir>/<manga>/<chapter>/ and returns the chapter directory.
func (d *DownloadService) DownloadChapter(ctx context.Context, job DownloadJob) (string, error) {
	if len(job.Pages) == 0 {
		return "", fmt.Errorf("chapter has no pages")
	}

	mangaDir := filepath.Join(job.OutputDir, sanitizeFilename(job.MangaTitle))
	chapterDir := filepath.Join(mangaDir, chapterDirName(job.Number, job.ChapterTitle))
	if err := os.MkdirAll(chapterDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create chapter directory: %w", err)
	}

	var bar *mpb.Bar
	var progress *mpb.Progress
	if d.Progress {
		progress = mpb.New(
			mpb.WithWidth(52),
			mpb.WithOutput(os.Stdout),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
		bar = progress.New(
			int64(len(job.Pages)),
			mpb.BarStyle().Rbound("]"),
			mpb.PrependDecorators(
				decor.Name(chapterDirName(job.Number, job.ChapterTitle)+"  "),
			),
			mpb.AppendDecorators(
				decor.Percentage(decor.WCSyncWidth),
				decor.CountersNoUnit(" | %d/%d pages", decor.WCSyncWidth),
			),
		)
	}

	concurrency := d.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	errorChan := make(chan error, len(job.Pages))

	for _, page := range job.Pages {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(page Page) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if d.Throttle > 0 {
				select {
				case <-ctx.Done():
					errorChan <- ctx.Err()
					return
				case <-time.After(d.Throttle):
				}
			}

			if err := d.fetchPage(ctx, job, page, chapterDir); err != nil {
				errorChan <- err
				return
			}
			if bar != nil {
				bar.Increment()
			}
		}(page)
	}

	wg.Wait()
	close(errorChan)
	if progress != nil {
		progress.Wait()
	}

	var errs []error
	for err := range errorChan {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		if d.Logger != nil {
			d.Logger.Error("chapter download had %d failures, first: %v", len(errs), errs[0])
		}
		return chapterDir, fmt.Errorf("download errors (%d): %v", len(errs), errs[0])
	}

	return chapterDir, nil
}

func (d *DownloadService) fetchPage(ctx context.Context, job DownloadJob, page Page, chapterDir string) error {
	var req *http.Request
	var err error

	if job.RequestFor != nil {
		req, err = job.RequestFor(ctx, page.URL)
	} else {
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, page.URL, nil)
	}
	if err != nil {
		return fmt.Errorf("failed to create request for page %d: %w", page.Index, err)
	}

	for k, v := range page.Headers {
		req.Header.Set(k, v)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download page %d: %w", page.Index, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d for page %d", resp.StatusCode, page.Index)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read page %d: %w", page.Index, err)
	}

	filename := formatPageFilename(page.Index+1, len(job.Pages), pageExtension(page))
	if err := os.WriteFile(filepath.Join(chapterDir, filename), data, 0o644); err != nil {
		return fmt.Errorf("failed to save page %d: %w", page.Index, err)
	}
	return nil
}

// pageExtension picks the file extension from the page filename, falling back
// to the URL path, then to .jpg.
func pageExtension(page Page) string {
	if ext := filepath.Ext(page.Filename); ext != "" {
		return ext
	}
	path := page.URL
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if ext := filepath.Ext(path); ext != "" {
		return ext
	}
	return ".jpg"
}

func chapterDirName(number float64, title string) string {
	name := formatChapterNumber(number)
	if title != "" {
		name += " - " + sanitizeFilename(title)
	}
	return name
}

// formatPageFilename numbers pages with enough leading zeros for the total
func formatPageFilename(pageIndex, totalPages int, extension string) string {
	pageDigits := len(fmt.Sprintf("%d", totalPages))
	if pageDigits < 2 {
		pageDigits = 2
	}

	ext := extension
	if ext == "" || ext[0] != '.' {
		ext = "." + ext
	}

	return fmt.Sprintf("%0*d%s", pageDigits, pageIndex, ext)
}

// formatChapterNumber pads whole chapters to three digits and keeps one
// decimal for fractional ones (5 -> "005", 5.5 -> "005.5").
func formatChapterNumber(chapter float64) string {
	if chapter == float64(int(chapter)) {
		return fmt.Sprintf("%03d", int(chapter))
	}
	intPart := int(chapter)
	fracPart := chapter - float64(intPart)
	return fmt.Sprintf("%03d%s", intPart, fmt.Sprintf("%.1f", fracPart)[1:])
}

// sanitizeFilename replaces characters that are invalid in file names
func sanitizeFilename(name string) string {
	invalid := []rune{'<', '>', ':', '"', '/', '\\', '|', '?', '*'}
	for _, char := range invalid {
		name = strings.ReplaceAll(name, string(char), "_")
	}

	name = strings.Trim(name, " .")
	if name == "" {
		name = "unknown"
	}

	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
