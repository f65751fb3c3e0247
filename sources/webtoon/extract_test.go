package webtoon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleNoFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		want   string
		wantOK bool
	}{
		{
			name:   "value followed by another parameter",
			url:    "https://www.webtoons.com/zh-hant/fantasy/demo/list?title_no=2089&x=1",
			want:   "2089",
			wantOK: true,
		},
		{
			name:   "trailing parameter runs to string end",
			url:    "https://www.webtoons.com/zh-hant/fantasy/demo/list?title_no=2089",
			want:   "2089",
			wantOK: true,
		},
		{
			name:   "absent key",
			url:    "https://www.webtoons.com/zh-hant/fantasy/demo/list?episode_no=3",
			wantOK: false,
		},
		{
			name:   "empty value",
			url:    "https://www.webtoons.com/list?title_no=",
			want:   "",
			wantOK: true,
		},
		{
			name:   "empty value before another parameter",
			url:    "https://www.webtoons.com/list?title_no=&page=2",
			want:   "",
			wantOK: true,
		},
		{
			name:   "no query string at all",
			url:    "https://www.webtoons.com/zh-hant/",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := titleNoFromURL(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEpisodeNoFromURL(t *testing.T) {
	t.Parallel()

	got, ok := episodeNoFromURL("https://www.webtoons.com/zh-hant/fantasy/demo/ep-12/viewer?title_no=2089&episode_no=12")
	assert.True(t, ok)
	assert.Equal(t, "12", got)

	_, ok = episodeNoFromURL("https://www.webtoons.com/zh-hant/fantasy/demo/list?title_no=2089")
	assert.False(t, ok)
}
