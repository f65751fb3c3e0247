package engine

import (
	"context"
	"net/http"
	"time"
)

// Source is the interface every content source registered with the engine
// implements.
type Source interface {
	ID() string
	Name() string
	Description() string
	SiteURL() string

	Search(ctx context.Context, query string, options SearchOptions) (MangaPage, error)
	GetManga(ctx context.Context, manga Manga) (Manga, error)
	GetChapters(ctx context.Context, manga Manga) ([]Chapter, error)
	GetPages(ctx context.Context, chapter Chapter) ([]Page, error)
}

// ListingProvider is implemented by sources that expose named listings.
type ListingProvider interface {
	Listings() []Listing
	MangaForListing(ctx context.Context, listing Listing, page int) (MangaPage, error)
}

// DeepLinkHandler is implemented by sources that can resolve site URLs into
// manga or chapter references. ResolveURL returns (nil, nil) when the URL is
// not recognized by the source.
type DeepLinkHandler interface {
	ResolveURL(ctx context.Context, raw string) (*DeepLink, error)
}

// ImageRequester is implemented by sources whose image fetches need request
// context beyond a plain GET.
type ImageRequester interface {
	ImageRequest(ctx context.Context, url string) (*http.Request, error)
}

// Manga represents basic manga information
type Manga struct {
	ID          string
	Title       string
	Cover       string
	Description string
	Authors     []string
	Status      string
	Tags        []string
	URL         string
	Viewer      string
}

// MangaPage is one page of a listing or search result
type MangaPage struct {
	Items       []Manga
	HasNextPage bool
}

// Chapter represents chapter metadata
type Chapter struct {
	ID        string
	Title     string
	Number    float64
	Date      *time.Time
	URL       string
	Thumbnail string
	Locked    bool
}

// Page represents a single chapter page image. Headers carry the request
// context the site requires when fetching the image.
type Page struct {
	Index    int
	URL      string
	Filename string
	Headers  map[string]string
}

// Listing is a named collection a source serves page by page
type Listing struct {
	ID   string
	Name string
}

// DeepLink is the result of resolving a site URL. ChapterID is empty when the
// link targets a series rather than a single episode.
type DeepLink struct {
	MangaID   string
	ChapterID string
}

// SearchOptions carries paging and site filter values for a search
type SearchOptions struct {
	Page    int
	Filters map[string]string
}
