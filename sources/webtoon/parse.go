package webtoon

import (
	"path"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"Lantern/engine"
)

// parseMangaList extracts every series entry from a listing, genre, ranking
// or search page. The next-page marker is the .pg_next pager element.
func parseMangaList(doc *goquery.Document) engine.MangaPage {
	var items []engine.Manga

	doc.Find("ul.webtoon_list li a.link").Each(func(_ int, sel *goquery.Selection) {
		if manga, ok := parseMangaItem(sel); ok {
			items = append(items, manga)
		}
	})

	return engine.MangaPage{
		Items:       items,
		HasNextPage: doc.Find(".pg_next").Length() > 0,
	}
}

// parseMangaItem reads one item anchor. The series ID comes from the
// data-title-no attribute, falling back to the title_no link parameter; an
// item without an ID or a title is skipped.
func parseMangaItem(sel *goquery.Selection) (engine.Manga, bool) {
	href, ok := sel.Attr("href")
	if !ok {
		return engine.Manga{}, false
	}

	id, ok := sel.Attr("data-title-no")
	if !ok {
		if id, ok = titleNoFromURL(href); !ok {
			return engine.Manga{}, false
		}
	}

	title := strings.TrimSpace(sel.Find("strong.title").First().Text())
	if title == "" {
		return engine.Manga{}, false
	}

	manga := engine.Manga{
		ID:     id,
		Title:  title,
		URL:    href,
		Viewer: viewerKind,
	}

	if cover, ok := sel.Find(".image_wrap img").First().Attr("src"); ok {
		manga.Cover = cover
	}

	if author := sel.Find(".author").First(); author.Length() > 0 {
		manga.Authors = splitAuthors(author.Text(), "/")
	}

	if genre := sel.Find(".genre").First(); genre.Length() > 0 {
		if text := strings.TrimSpace(genre.Text()); text != "" {
			manga.Tags = []string{text}
		}
	}

	return manga, true
}

// applyDetails overwrites manga fields with what the detail page shows. The
// cover is only taken from og:image when the record has none yet; everything
// else found on the page replaces the old value.
func applyDetails(doc *goquery.Document, manga *engine.Manga) {
	if el := doc.Find("h1.subj").First(); el.Length() > 0 {
		manga.Title = strings.TrimSpace(el.Text())
	} else if el := doc.Find(".subj").First(); el.Length() > 0 {
		manga.Title = strings.TrimSpace(el.Text())
	}

	if el := doc.Find(".author_area").First(); el.Length() > 0 {
		cleaned := strings.ReplaceAll(el.Text(), "Writer Info", "")
		cleaned = strings.ReplaceAll(cleaned, "作家資訊", "")
		if authors := splitAuthors(cleaned, ",", "/"); len(authors) > 0 {
			manga.Authors = authors
		}
	}

	if el := doc.Find("p.summary").First(); el.Length() > 0 {
		manga.Description = strings.TrimSpace(el.Text())
	} else if el := doc.Find(".summary").First(); el.Length() > 0 {
		manga.Description = strings.TrimSpace(el.Text())
	}

	if el := doc.Find(".genre").First(); el.Length() > 0 {
		if text := strings.TrimSpace(el.Text()); text != "" {
			manga.Tags = []string{text}
		}
	}

	if manga.Cover == "" {
		if cover, ok := doc.Find("meta[property='og:image']").First().Attr("content"); ok {
			manga.Cover = cover
		}
	}

	if doc.Find(".ico_completed").Length() > 0 {
		manga.Status = statusCompleted
	} else {
		manga.Status = statusOngoing
	}
	manga.Viewer = viewerKind
}

// parseChapterRows extracts the episode rows a detail page embeds, used when
// the mobile API yields nothing. Detail pages list newest episodes first.
func parseChapterRows(doc *goquery.Document) []engine.Chapter {
	var chapters []engine.Chapter

	doc.Find("#_listUl li a").Each(func(_ int, sel *goquery.Selection) {
		if chapter, ok := parseChapterItem(sel); ok {
			chapters = append(chapters, chapter)
		}
	})

	return chapters
}

// parseChapterItem reads one episode anchor. The chapter ID is the full
// viewer href; the number comes from its episode_no parameter.
func parseChapterItem(sel *goquery.Selection) (engine.Chapter, bool) {
	href, ok := sel.Attr("href")
	if !ok {
		return engine.Chapter{}, false
	}

	chapter := engine.Chapter{
		ID:  href,
		URL: href,
	}

	if no, ok := episodeNoFromURL(href); ok {
		if n, err := strconv.ParseFloat(no, 64); err == nil {
			chapter.Number = n
		}
	}

	if el := sel.Find(".subj span").First(); el.Length() > 0 {
		chapter.Title = strings.TrimSpace(el.Text())
	} else if el := sel.Find(".subj").First(); el.Length() > 0 {
		chapter.Title = strings.TrimSpace(el.Text())
	}

	if el := sel.Find(".date").First(); el.Length() > 0 {
		if t, ok := parseDate(el.Text()); ok {
			chapter.Date = t
		}
	}

	if thumb, ok := sel.Find("img").First().Attr("src"); ok {
		chapter.Thumbnail = thumb
	}

	chapter.Locked = sel.Find(".ico_lock").Length() > 0 || sel.Find(".ico_bgm").Length() > 0

	return chapter, true
}

// parsePages collects the image URLs of a chapter viewer page. Two markup
// generations exist: pages with a #_imageList container and older ones using
// .viewer_img. Lazy-loaded URLs in data-url win over src; placeholder assets
// are dropped.
func parsePages(doc *goquery.Document) []engine.Page {
	selector := ".viewer_img img"
	if doc.Find("#_imageList").Length() > 0 {
		selector = "#_imageList img"
	}

	var pages []engine.Page
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		url, ok := sel.Attr("data-url")
		if !ok || url == "" {
			url, _ = sel.Attr("src")
		}
		if url == "" {
			return
		}

		if strings.Contains(url, "bg_transparency") ||
			strings.Contains(url, "warning") ||
			strings.Contains(url, "loading") {
			return
		}

		pages = append(pages, engine.Page{
			Index:    len(pages),
			URL:      url,
			Filename: pageFilename(url),
			Headers:  map[string]string{"Referer": refererURL},
		})
	})

	return pages
}

// pageFilename is the URL path basename without query or fragment
func pageFilename(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return path.Base(url)
}

// splitAuthors splits on each separator in turn, trims and drops empties
func splitAuthors(text string, separators ...string) []string {
	parts := []string{text}
	for _, sep := range separators {
		var next []string
		for _, part := range parts {
			next = append(next, strings.Split(part, sep)...)
		}
		parts = next
	}

	var authors []string
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			authors = append(authors, trimmed)
		}
	}
	return authors
}
