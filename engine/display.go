package engine

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"Lantern/utils"
)

// DisplayService handles all console output formatting
type DisplayService struct {
	Writer io.Writer

	HeaderStyle    *color.Color
	TitleStyle     *color.Color
	SuccessStyle   *color.Color
	ErrorStyle     *color.Color
	WarningStyle   *color.Color
	InfoStyle      *color.Color
	SecondaryStyle *color.Color
	LabelStyle     *color.Color
	IDStyle        *color.Color
	DateStyle      *color.Color
}

// NewDisplayService creates a display service writing to stdout
func NewDisplayService() *DisplayService {
	return &DisplayService{
		Writer:         os.Stdout,
		HeaderStyle:    color.New(color.Bold, color.FgCyan),
		TitleStyle:     color.New(color.Bold, color.FgWhite),
		SuccessStyle:   color.New(color.FgGreen),
		ErrorStyle:     color.New(color.FgRed),
		WarningStyle:   color.New(color.FgYellow),
		InfoStyle:      color.New(color.FgBlue),
		SecondaryStyle: color.New(color.FgHiBlack),
		LabelStyle:     color.New(color.FgHiBlue),
		IDStyle:        color.New(color.FgHiMagenta),
		DateStyle:      color.New(color.FgHiBlue),
	}
}

// Header prints a header line followed by a divider
func (d *DisplayService) Header(text string) {
	d.HeaderStyle.Fprintln(d.Writer, text)
	fmt.Fprintln(d.Writer, strings.Repeat("-", 80))
}

// Section prints a blank-line separated section title
func (d *DisplayService) Section(text string) {
	fmt.Fprintln(d.Writer)
	d.HeaderStyle.Fprintln(d.Writer, text)
	fmt.Fprintln(d.Writer)
}

// Detail prints a labeled value
func (d *DisplayService) Detail(label, value string) {
	d.LabelStyle.Fprintf(d.Writer, "%s: ", label)
	fmt.Fprintln(d.Writer, value)
}

// Success prints a success message
func (d *DisplayService) Success(text string) {
	d.SuccessStyle.Fprintln(d.Writer, text)
}

// Error prints an error message
func (d *DisplayService) Error(text string) {
	d.ErrorStyle.Fprintln(d.Writer, text)
}

// Warning prints a warning message
func (d *DisplayService) Warning(text string) {
	d.WarningStyle.Fprintln(d.Writer, text)
}

// Info prints an informational message
func (d *DisplayService) Info(text string) {
	d.InfoStyle.Fprintln(d.Writer, text)
}

// Table renders headers and rows as a left-aligned table
func (d *DisplayService) Table(headers []string, rows [][]string) {
	table := tablewriter.NewTable(d.Writer)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Alignment.Global = tw.AlignLeft
		cfg.Row.Alignment.Global = tw.AlignLeft
		cfg.Header.Padding.Global = tw.Padding{Left: " ", Right: " "}
		cfg.Row.Padding.Global = tw.Padding{Left: " ", Right: " "}
	})

	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return
	}
	if err := table.Render(); err != nil {
		return
	}
}

// MangaItem prints one manga entry with its combined ID
func (d *DisplayService) MangaItem(manga Manga, sourceID string, number int) {
	prefix := ""
	if number > 0 {
		prefix = fmt.Sprintf("%d. ", number)
	}

	d.TitleStyle.Fprintf(d.Writer, "%s%s ", prefix, manga.Title)
	d.IDStyle.Fprintf(d.Writer, "(ID: %s)\n", utils.FormatID(sourceID, manga.ID))

	var details []string
	if len(manga.Authors) > 0 {
		details = append(details, fmt.Sprintf("Authors: %s", strings.Join(manga.Authors, ", ")))
	}
	if manga.Status != "" {
		details = append(details, fmt.Sprintf("Status: %s", manga.Status))
	}
	if len(details) > 0 {
		d.LabelStyle.Fprintf(d.Writer, "  %s\n", strings.Join(details, " | "))
	}

	if len(manga.Tags) > 0 {
		limit := 5
		tags := manga.Tags
		suffix := ""
		if len(tags) > limit {
			tags = tags[:limit]
			suffix = fmt.Sprintf(" +%d more", len(manga.Tags)-limit)
		}
		d.SecondaryStyle.Fprintf(d.Writer, "  Tags: %s%s\n", strings.Join(tags, ", "), suffix)
	}

	fmt.Fprintln(d.Writer)
}

// MangaList prints a result page of manga entries
func (d *DisplayService) MangaList(page MangaPage, sourceID, title string) {
	if title != "" {
		d.Section(title)
	}

	if len(page.Items) == 0 {
		d.Warning("No manga found.")
		return
	}

	d.Info(fmt.Sprintf("Found %d manga:", len(page.Items)))
	fmt.Fprintln(d.Writer)

	for i, manga := range page.Items {
		d.MangaItem(manga, sourceID, i+1)
	}

	if page.HasNextPage {
		d.SecondaryStyle.Fprintln(d.Writer, "More results available on the next page.")
	}
}

// MangaDetail prints full manga information
func (d *DisplayService) MangaDetail(manga Manga, sourceID, sourceName string) {
	d.Header(manga.Title)

	d.Detail("ID", utils.FormatID(sourceID, manga.ID))
	d.Detail("Source", fmt.Sprintf("%s (%s)", sourceID, sourceName))

	if len(manga.Authors) > 0 {
		d.Detail("Authors", strings.Join(manga.Authors, ", "))
	}
	if manga.Status != "" {
		d.Detail("Status", manga.Status)
	}
	if len(manga.Tags) > 0 {
		d.Detail("Tags", strings.Join(manga.Tags, ", "))
	}
	if manga.URL != "" {
		d.Detail("URL", manga.URL)
	}
	if manga.Cover != "" {
		d.Detail("Cover", manga.Cover)
	}

	if manga.Description != "" {
		fmt.Fprintln(d.Writer)
		d.LabelStyle.Fprintln(d.Writer, "Description:")
		fmt.Fprintln(d.Writer, manga.Description)
	}
}

// ChapterTable prints chapters as a table, newest first as delivered
func (d *DisplayService) ChapterTable(chapters []Chapter, sourceID string) {
	if len(chapters) == 0 {
		d.Warning("No chapters found.")
		return
	}

	d.Info(fmt.Sprintf("Found %d chapters:", len(chapters)))

	headers := []string{"#", "TITLE", "DATE", "ID"}
	rows := make([][]string, len(chapters))
	for i, ch := range chapters {
		title := ch.Title
		if ch.Locked {
			title += " [locked]"
		}
		rows[i] = []string{
			formatChapterNumber(ch.Number),
			title,
			formatDate(ch.Date),
			utils.FormatID(sourceID, ch.ID),
		}
	}

	d.Table(headers, rows)
}

// PageList prints chapter pages one per line
func (d *DisplayService) PageList(pages []Page) {
	if len(pages) == 0 {
		d.Warning("No pages found.")
		return
	}

	d.Info(fmt.Sprintf("Found %d pages:", len(pages)))
	for _, page := range pages {
		d.SecondaryStyle.Fprintf(d.Writer, "%3d. ", page.Index+1)
		fmt.Fprintln(d.Writer, page.URL)
	}
}

// SourceTable prints the registered sources as a table
func (d *DisplayService) SourceTable(sources []Source) {
	if len(sources) == 0 {
		d.Warning("No sources registered.")
		return
	}

	headers := []string{"ID", "NAME", "SITE", "DESCRIPTION"}
	rows := make([][]string, len(sources))
	for i, src := range sources {
		rows[i] = []string{src.ID(), src.Name(), src.SiteURL(), src.Description()}
	}

	d.Table(headers, rows)
}

// Listings prints the listings a source offers as a table
func (d *DisplayService) Listings(sourceID string, listings []Listing) {
	if len(listings) == 0 {
		d.Warning("Source has no listings.")
		return
	}

	headers := []string{"ID", "NAME"}
	rows := make([][]string, len(listings))
	for i, l := range listings {
		rows[i] = []string{l.ID, l.Name}
	}

	d.Table(headers, rows)
	d.SecondaryStyle.Fprintf(d.Writer, "Use `lantern list <listing-id> --source %s` to browse one.\n", sourceID)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Format("2006-01-02")
}
