package webtoon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenreSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		genre string
		want  string
	}{
		{"愛情", "romance"},
		{"歐式宮廷", "western_palace"},
		{"影視化", "adaptation"},
		{"校園", "school"},
		{"台灣原創作品", "local"},
		{"奇幻冒險", "fantasy"},
		{"驚悚", "thriller"},
		{"恐怖", "horror"},
		{"武俠", "martial_arts"},
		{"LGBTQ+", "bl_gl"},
		{"大人系", "romance_m"},
		{"劇情", "drama"},
		{"動作", "action"},
		{"生活/日常", "slice_of_life"},
		{"搞笑", "comedy"},
		{"穿越/轉生", "time_slip"},
		{"現代/職場", "city_office"},
		{"懸疑推理", "mystery"},
		{"療癒/萌系", "heartwarming"},
		{"少年", "shonen"},
		{"古代宮廷", "eastern_palace"},
		{"小說", "web_novel"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, genreSlug(tt.genre), "genre %s", tt.genre)
	}

	assert.Equal(t, "romance", genreSlug("未知類別"))
	assert.Equal(t, "romance", genreSlug(""))
}

func TestSortOrder(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "LIKEIT", sortOrder("愛心排序"))
	assert.Equal(t, "UPDATE", sortOrder("最近更新"))
	assert.Equal(t, "MANA", sortOrder("人氣排序"))
	assert.Equal(t, "MANA", sortOrder(""))
}
