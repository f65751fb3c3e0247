// Package webtoon scrapes the Traditional Chinese Webtoons site: listing and
// search pages, series detail pages, the mobile episode API and chapter
// viewer pages.
package webtoon

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"Lantern/engine"
	"Lantern/errors"
)

const (
	defaultBaseURL   = "https://www.webtoons.com"
	defaultLangPath  = "/zh-hant"
	defaultMobileAPI = "https://m.webtoons.com/api/v1/webtoon"

	// The site serves the mobile markup variants this source parses when it
	// sees an iPhone user agent.
	userAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

	refererURL = "https://www.webtoons.com"

	viewerKind      = "webtoon"
	statusOngoing   = "Ongoing"
	statusCompleted = "Completed"
)

var dayListings = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true, "complete": true,
}

// Source serves Webtoons zh-hant content
type Source struct {
	engine    *engine.Engine
	baseURL   string
	langPath  string
	mobileAPI string
}

var (
	_ engine.Source          = (*Source)(nil)
	_ engine.ListingProvider = (*Source)(nil)
	_ engine.DeepLinkHandler = (*Source)(nil)
	_ engine.ImageRequester  = (*Source)(nil)
)

// New creates the source backed by e's services
func New(e *engine.Engine) *Source {
	return &Source{
		engine:    e,
		baseURL:   defaultBaseURL,
		langPath:  defaultLangPath,
		mobileAPI: defaultMobileAPI,
	}
}

func (s *Source) ID() string   { return "wtn" }
func (s *Source) Name() string { return "Webtoons (繁體中文)" }

func (s *Source) Description() string {
	return "LINE Webtoon originals and rankings in Traditional Chinese"
}

func (s *Source) SiteURL() string { return s.baseURL + s.langPath }

// siteHeaders carries the request context every site fetch needs
func (s *Source) siteHeaders() http.Header {
	headers := make(http.Header)
	headers.Set("Referer", s.baseURL)
	headers.Set("User-Agent", userAgent)
	return headers
}

// Search looks up series by keyword, or browses a genre when the query is
// empty. Keyword results are a single page; genre browsing paginates via the
// site's pager marker.
func (s *Source) Search(ctx context.Context, query string, options engine.SearchOptions) (engine.MangaPage, error) {
	if query != "" {
		target := fmt.Sprintf("%s%s/search?keyword=%s", s.baseURL, s.langPath, url.QueryEscape(query))
		doc, err := s.engine.HTTP.FetchDocument(ctx, target, s.siteHeaders())
		if err != nil {
			return engine.MangaPage{}, s.wrapErr("search", query, err)
		}

		page := parseMangaList(doc)
		page.HasNextPage = false
		return page, nil
	}

	genre := genreSlug(options.Filters["genre"])
	sort := sortOrder(options.Filters["sort"])
	pageNo := options.Page
	if pageNo < 1 {
		pageNo = 1
	}

	target := fmt.Sprintf("%s%s/genres/%s?sortOrder=%s&page=%d", s.baseURL, s.langPath, genre, sort, pageNo)
	doc, err := s.engine.HTTP.FetchDocument(ctx, target, s.siteHeaders())
	if err != nil {
		return engine.MangaPage{}, s.wrapErr("genre", genre, err)
	}

	return parseMangaList(doc), nil
}

// GetManga refreshes the record from its detail page. Fields found on the
// page overwrite the old values; the URL is filled in when the record came
// from a deep link and has none.
func (s *Source) GetManga(ctx context.Context, manga engine.Manga) (engine.Manga, error) {
	detailURL := manga.URL
	if detailURL == "" {
		detailURL = s.detailURL(manga.ID)
	}

	doc, err := s.engine.HTTP.FetchDocument(ctx, detailURL, s.siteHeaders())
	if err != nil {
		return manga, s.wrapErr("manga", manga.ID, err)
	}

	applyDetails(doc, &manga)
	if manga.URL == "" {
		manga.URL = detailURL
	}
	return manga, nil
}

// GetChapters lists every episode newest-first. The mobile API delivers the
// full list in one request; when it fails or comes back empty the detail
// page's episode rows are scraped instead.
func (s *Source) GetChapters(ctx context.Context, manga engine.Manga) ([]engine.Chapter, error) {
	apiURL := fmt.Sprintf("%s/%s/episodes?pageSize=99999", s.mobileAPI, manga.ID)

	body, err := s.engine.HTTP.FetchString(ctx, apiURL, s.siteHeaders())
	if err == nil {
		chapters, jsonErr := s.episodesFromJSON([]byte(body), manga.ID)
		if jsonErr == nil && len(chapters) > 0 {
			return chapters, nil
		}
		err = jsonErr
	}
	if err != nil {
		s.engine.Logger.Warn("episode API failed for title %s, scraping detail page: %v", manga.ID, err)
	}

	detailURL := manga.URL
	if detailURL == "" {
		detailURL = s.detailURL(manga.ID)
	}

	doc, docErr := s.engine.HTTP.FetchDocument(ctx, detailURL, s.siteHeaders())
	if docErr != nil {
		return nil, s.wrapErr("chapters", manga.ID, docErr)
	}

	return parseChapterRows(doc), nil
}

// GetPages lists the image URLs of one chapter. The chapter ID doubles as the
// viewer URL when no explicit URL is set.
func (s *Source) GetPages(ctx context.Context, chapter engine.Chapter) ([]engine.Page, error) {
	viewerURL := chapter.URL
	if viewerURL == "" {
		viewerURL = chapter.ID
	}

	doc, err := s.engine.HTTP.FetchDocument(ctx, viewerURL, s.siteHeaders())
	if err != nil {
		return nil, s.wrapErr("pages", chapter.ID, err)
	}

	return parsePages(doc), nil
}

// Listings returns the ranking, weekday schedule and completed collections
func (s *Source) Listings() []engine.Listing {
	return []engine.Listing{
		{ID: "popular", Name: "熱門排行"},
		{ID: "monday", Name: "週一"},
		{ID: "tuesday", Name: "週二"},
		{ID: "wednesday", Name: "週三"},
		{ID: "thursday", Name: "週四"},
		{ID: "friday", Name: "週五"},
		{ID: "saturday", Name: "週六"},
		{ID: "sunday", Name: "週日"},
		{ID: "complete", Name: "已完結"},
	}
}

// MangaForListing serves one page of a listing. The ranking paginates; the
// weekday and completed pages are single-page, so anything past page 1 is
// empty.
func (s *Source) MangaForListing(ctx context.Context, listing engine.Listing, page int) (engine.MangaPage, error) {
	if page < 1 {
		page = 1
	}

	var target string
	switch {
	case listing.ID == "popular":
		target = fmt.Sprintf("%s%s/ranking?sortOrder=MANA&page=%d", s.baseURL, s.langPath, page)
	case dayListings[listing.ID]:
		if page > 1 {
			return engine.MangaPage{}, nil
		}
		target = fmt.Sprintf("%s%s/originals/%s?sortOrder=MANA", s.baseURL, s.langPath, listing.ID)
	default:
		return engine.MangaPage{}, fmt.Errorf("%w: %s", errors.ErrUnknownListing, listing.ID)
	}

	doc, err := s.engine.HTTP.FetchDocument(ctx, target, s.siteHeaders())
	if err != nil {
		return engine.MangaPage{}, s.wrapErr("listing", listing.ID, err)
	}

	return parseMangaList(doc), nil
}

// ResolveURL recognizes site URLs that carry a title_no parameter. Viewer
// URLs resolve to a chapter, anything else to the series.
func (s *Source) ResolveURL(_ context.Context, raw string) (*engine.DeepLink, error) {
	titleNo, ok := titleNoFromURL(raw)
	if !ok {
		return nil, nil
	}

	if strings.Contains(raw, "/viewer") {
		return &engine.DeepLink{MangaID: titleNo, ChapterID: raw}, nil
	}
	return &engine.DeepLink{MangaID: titleNo}, nil
}

// ImageRequest builds the GET the image CDN accepts: a Referer pointing back
// at the site.
func (s *Source) ImageRequest(ctx context.Context, imageURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Referer", refererURL)
	return req, nil
}

// detailURL is the canonical series page for a title number
func (s *Source) detailURL(titleNo string) string {
	return fmt.Sprintf("%s%s/originals/a/list?title_no=%s", s.baseURL, s.langPath, titleNo)
}

func (s *Source) wrapErr(resource, id string, err error) error {
	return &errors.SourceError{
		SourceID:     s.ID(),
		ResourceType: resource,
		ResourceID:   id,
		Err:          err,
	}
}
