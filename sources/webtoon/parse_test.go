package webtoon

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lantern/engine"
)

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

const listPageHTML = `
<html><body>
<ul class="webtoon_list">
  <li>
    <a class="link" href="https://www.webtoons.com/zh-hant/fantasy/demo/list?title_no=999" data-title-no="2089">
      <div class="image_wrap"><img src="https://cdn.webtoons.com/covers/2089.jpg"></div>
      <strong class="title">魔法學院</strong>
      <span class="author">林一 / 王二</span>
      <span class="genre">奇幻冒險</span>
    </a>
  </li>
  <li>
    <a class="link" href="https://www.webtoons.com/zh-hant/drama/other/list?title_no=314">
      <strong class="title">平凡日常</strong>
    </a>
  </li>
  <li>
    <a class="link" href="https://www.webtoons.com/zh-hant/promo/banner">
      <strong class="title">無編號促銷</strong>
    </a>
  </li>
  <li>
    <a class="link" href="https://www.webtoons.com/zh-hant/drama/untitled/list?title_no=77"></a>
  </li>
</ul>
<div class="paginate"><a class="pg_next" href="?page=2">下一頁</a></div>
</body></html>`

func TestParseMangaList(t *testing.T) {
	t.Parallel()

	page := parseMangaList(docFromString(t, listPageHTML))

	// The promo anchor has no title number and the last one has no title.
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasNextPage)

	first := page.Items[0]
	assert.Equal(t, "2089", first.ID, "data-title-no wins over the href parameter")
	assert.Equal(t, "魔法學院", first.Title)
	assert.Equal(t, "https://www.webtoons.com/zh-hant/fantasy/demo/list?title_no=999", first.URL)
	assert.Equal(t, "https://cdn.webtoons.com/covers/2089.jpg", first.Cover)
	assert.Equal(t, []string{"林一", "王二"}, first.Authors)
	assert.Equal(t, []string{"奇幻冒險"}, first.Tags)
	assert.Equal(t, "webtoon", first.Viewer)

	second := page.Items[1]
	assert.Equal(t, "314", second.ID, "ID falls back to the href parameter")
	assert.Empty(t, second.Cover)
	assert.Empty(t, second.Authors)
	assert.Empty(t, second.Tags)
}

func TestParseMangaListLastPage(t *testing.T) {
	t.Parallel()

	page := parseMangaList(docFromString(t, `<ul class="webtoon_list"></ul>`))
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNextPage)
}

const detailPageHTML = `
<html><head>
<meta property="og:image" content="https://cdn.webtoons.com/og/2089.jpg">
</head><body>
<div class="detail_header">
  <h1 class="subj">魔法學院</h1>
  <div class="author_area">
    林一 / 王二
    <button class="ico_info">作家資訊</button>
  </div>
  <span class="genre">奇幻冒險</span>
  <span class="ico_completed">完結</span>
</div>
<p class="summary">
  一段關於魔法與友情的故事。
</p>
</body></html>`

func TestApplyDetails(t *testing.T) {
	t.Parallel()

	manga := engine.Manga{ID: "2089"}
	applyDetails(docFromString(t, detailPageHTML), &manga)

	assert.Equal(t, "魔法學院", manga.Title)
	assert.Equal(t, []string{"林一", "王二"}, manga.Authors)
	assert.Equal(t, "一段關於魔法與友情的故事。", manga.Description)
	assert.Equal(t, []string{"奇幻冒險"}, manga.Tags)
	assert.Equal(t, "https://cdn.webtoons.com/og/2089.jpg", manga.Cover)
	assert.Equal(t, "Completed", manga.Status)
	assert.Equal(t, "webtoon", manga.Viewer)
}

func TestApplyDetailsKeepsExistingCover(t *testing.T) {
	t.Parallel()

	manga := engine.Manga{ID: "2089", Cover: "https://cdn.webtoons.com/covers/2089.jpg"}
	applyDetails(docFromString(t, detailPageHTML), &manga)

	assert.Equal(t, "https://cdn.webtoons.com/covers/2089.jpg", manga.Cover)
}

func TestApplyDetailsFallbackSelectors(t *testing.T) {
	t.Parallel()

	html := `
<html><body>
<div class="info"><span class="subj">備用標題</span></div>
<div class="summary">備用簡介</div>
</body></html>`

	manga := engine.Manga{ID: "7", Authors: []string{"原作者"}}
	applyDetails(docFromString(t, html), &manga)

	assert.Equal(t, "備用標題", manga.Title)
	assert.Equal(t, "備用簡介", manga.Description)
	assert.Equal(t, []string{"原作者"}, manga.Authors, "missing author area leaves authors alone")
	assert.Equal(t, "Ongoing", manga.Status)
}

const chapterListHTML = `
<html><body>
<ul id="_listUl">
  <li class="episode_item">
    <a href="https://www.webtoons.com/zh-hant/fantasy/demo/ep-12/viewer?title_no=2089&episode_no=12">
      <img src="https://cdn.webtoons.com/thumbs/ep12.jpg">
      <span class="subj"><span>第 12 話</span></span>
      <span class="date">2026年2月22日</span>
      <span class="ico_lock">搶先看</span>
    </a>
  </li>
  <li class="episode_item">
    <a href="https://www.webtoons.com/zh-hant/fantasy/demo/ep-11/viewer?title_no=2089&episode_no=11">
      <span class="subj">第 11 話</span>
      <span class="date">2026年2月15日</span>
    </a>
  </li>
</ul>
</body></html>`

func TestParseChapterRows(t *testing.T) {
	t.Parallel()

	chapters := parseChapterRows(docFromString(t, chapterListHTML))
	require.Len(t, chapters, 2)

	newest := chapters[0]
	assert.Equal(t, "https://www.webtoons.com/zh-hant/fantasy/demo/ep-12/viewer?title_no=2089&episode_no=12", newest.ID)
	assert.Equal(t, newest.ID, newest.URL)
	assert.Equal(t, 12.0, newest.Number)
	assert.Equal(t, "第 12 話", newest.Title)
	assert.Equal(t, "https://cdn.webtoons.com/thumbs/ep12.jpg", newest.Thumbnail)
	assert.True(t, newest.Locked)
	require.NotNil(t, newest.Date)
	assert.True(t, newest.Date.Equal(time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)))

	older := chapters[1]
	assert.Equal(t, 11.0, older.Number)
	assert.Equal(t, "第 11 話", older.Title, "title falls back to .subj without inner span")
	assert.False(t, older.Locked)
	assert.Empty(t, older.Thumbnail)
}

func TestParsePagesImageList(t *testing.T) {
	t.Parallel()

	html := `
<html><body>
<div id="_imageList">
  <img src="https://cdn.webtoons.com/loading.gif" data-url="https://cdn.webtoons.com/pages/001.jpg?type=q90">
  <img src="https://cdn.webtoons.com/pages/002.png">
  <img data-url="" src="https://cdn.webtoons.com/pages/003.jpg">
  <img src="https://cdn.webtoons.com/assets/bg_transparency.png">
  <img src="https://cdn.webtoons.com/assets/warning_box.png">
  <img data-url="https://cdn.webtoons.com/assets/loading_spin.gif">
  <img alt="no source at all">
</div>
<div class="viewer_img"><img src="https://cdn.webtoons.com/ignored.jpg"></div>
</body></html>`

	pages := parsePages(docFromString(t, html))
	require.Len(t, pages, 3)

	assert.Equal(t, 0, pages[0].Index)
	assert.Equal(t, "https://cdn.webtoons.com/pages/001.jpg?type=q90", pages[0].URL, "data-url wins over src")
	assert.Equal(t, "001.jpg", pages[0].Filename)
	assert.Equal(t, "https://www.webtoons.com", pages[0].Headers["Referer"])

	assert.Equal(t, 1, pages[1].Index)
	assert.Equal(t, "https://cdn.webtoons.com/pages/002.png", pages[1].URL)
	assert.Equal(t, "002.png", pages[1].Filename)

	assert.Equal(t, "https://cdn.webtoons.com/pages/003.jpg", pages[2].URL, "empty data-url falls back to src")
}

func TestParsePagesViewerImgFallback(t *testing.T) {
	t.Parallel()

	html := `
<html><body>
<div class="viewer_img">
  <img src="https://cdn.webtoons.com/pages/a.jpg">
  <img src="https://cdn.webtoons.com/pages/b.jpg">
</div>
</body></html>`

	pages := parsePages(docFromString(t, html))
	require.Len(t, pages, 2)
	assert.Equal(t, "a.jpg", pages[0].Filename)
	assert.Equal(t, "b.jpg", pages[1].Filename)
}

func TestSplitAuthors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		seps []string
		want []string
	}{
		{
			name: "slash separated",
			text: " 林一 / 王二 ",
			seps: []string{"/"},
			want: []string{"林一", "王二"},
		},
		{
			name: "comma then slash",
			text: "林一, 王二/張三",
			seps: []string{",", "/"},
			want: []string{"林一", "王二", "張三"},
		},
		{
			name: "empties dropped",
			text: " , / ,",
			seps: []string{",", "/"},
			want: nil,
		},
		{
			name: "single author",
			text: "林一",
			seps: []string{",", "/"},
			want: []string{"林一"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, splitAuthors(tt.text, tt.seps...))
		})
	}
}

func TestPageFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "001.jpg", pageFilename("https://cdn.webtoons.com/pages/001.jpg?type=q90"))
	assert.Equal(t, "002.png", pageFilename("https://cdn.webtoons.com/pages/002.png#top"))
	assert.Equal(t, "003.webp", pageFilename("https://cdn.webtoons.com/pages/003.webp"))
}
