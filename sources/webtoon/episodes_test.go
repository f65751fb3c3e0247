package webtoon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpisodesFromJSON(t *testing.T) {
	t.Parallel()

	s := &Source{baseURL: "https://www.webtoons.com", langPath: "/zh-hant"}
	body := []byte(`{
		"result": {
			"webtoon": {"titleNo": 2089},
			"episodeList": [
				{
					"episodeNo": 1,
					"episodeTitle": "第 1 話",
					"viewerLink": "/zh-hant/fantasy/demo/ep-1/viewer?title_no=2089&episode_no=1",
					"thumbnail": "/thumbs/ep1.jpg",
					"exposureDateMillis": 1700000000000
				},
				{
					"episodeNo": 2,
					"episodeTitle": "第 2 話",
					"viewerLink": "https://cdn.webtoons.com/viewer?episode_no=2",
					"exposureDateMillis": 1700086400123
				},
				{
					"episodeNo": 3,
					"episodeTitle": "第 3 話"
				}
			]
		}
	}`)

	chapters, err := s.episodesFromJSON(body, "2089")
	require.NoError(t, err)
	require.Len(t, chapters, 3)

	// Newest episode comes first.
	assert.Equal(t, 3.0, chapters[0].Number)
	assert.Equal(t, 2.0, chapters[1].Number)
	assert.Equal(t, 1.0, chapters[2].Number)

	// Episode without a viewer link gets one built from the title number.
	assert.Equal(t, "https://www.webtoons.com/zh-hant/viewer?title_no=2089&episode_no=3", chapters[0].ID)
	assert.Equal(t, chapters[0].ID, chapters[0].URL)
	assert.Nil(t, chapters[0].Date)

	// Absolute viewer links pass through untouched.
	assert.Equal(t, "https://cdn.webtoons.com/viewer?episode_no=2", chapters[1].URL)
	require.NotNil(t, chapters[1].Date)
	assert.Equal(t, int64(1700086400), chapters[1].Date.Unix())

	// Relative links are joined onto the site base.
	assert.Equal(t, "https://www.webtoons.com/zh-hant/fantasy/demo/ep-1/viewer?title_no=2089&episode_no=1", chapters[2].URL)
	assert.Equal(t, "https://www.webtoons.com/thumbs/ep1.jpg", chapters[2].Thumbnail)
	assert.Equal(t, "第 1 話", chapters[2].Title)
	require.NotNil(t, chapters[2].Date)
	assert.True(t, chapters[2].Date.Equal(time.Unix(1700000000, 0)))
}

func TestEpisodesFromJSONSkipsMalformedElements(t *testing.T) {
	t.Parallel()

	s := &Source{baseURL: "https://www.webtoons.com", langPath: "/zh-hant"}
	body := []byte(`{
		"episodeList": [
			"not an object",
			{"episodeTitle": "missing number"},
			{"episodeNo": 7, "episodeTitle": "第 7 話"}
		]
	}`)

	chapters, err := s.episodesFromJSON(body, "42")
	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, 7.0, chapters[0].Number)
	assert.Equal(t, "https://www.webtoons.com/zh-hant/viewer?title_no=42&episode_no=7", chapters[0].URL)
}

func TestEpisodesFromJSONNoEpisodeList(t *testing.T) {
	t.Parallel()

	s := &Source{baseURL: "https://www.webtoons.com", langPath: "/zh-hant"}

	chapters, err := s.episodesFromJSON([]byte(`{"result": {"message": "ok"}}`), "42")
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestEpisodesFromJSONInvalidPayload(t *testing.T) {
	t.Parallel()

	s := &Source{baseURL: "https://www.webtoons.com", langPath: "/zh-hant"}

	_, err := s.episodesFromJSON([]byte(`{"episodeList": [`), "42")
	assert.Error(t, err)
}

func TestFindArrayNested(t *testing.T) {
	t.Parallel()

	tree := map[string]interface{}{
		"a": []interface{}{
			map[string]interface{}{
				"episodeList": []interface{}{"x", "y"},
			},
		},
	}

	arr, ok := findArray(tree, "episodeList")
	require.True(t, ok)
	assert.Len(t, arr, 2)

	_, ok = findArray(tree, "missing")
	assert.False(t, ok)
}
