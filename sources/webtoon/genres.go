package webtoon

// genreSlugs maps the site's localized genre names to URL slugs
var genreSlugs = map[string]string{
	"愛情":       "romance",
	"歐式宮廷":     "western_palace",
	"影視化":      "adaptation",
	"校園":       "school",
	"台灣原創作品":   "local",
	"奇幻冒險":     "fantasy",
	"驚悚":       "thriller",
	"恐怖":       "horror",
	"武俠":       "martial_arts",
	"LGBTQ+":   "bl_gl",
	"大人系":      "romance_m",
	"劇情":       "drama",
	"動作":       "action",
	"生活/日常":    "slice_of_life",
	"搞笑":       "comedy",
	"穿越/轉生":    "time_slip",
	"現代/職場":    "city_office",
	"懸疑推理":     "mystery",
	"療癒/萌系":    "heartwarming",
	"少年":       "shonen",
	"古代宮廷":     "eastern_palace",
	"小說":       "web_novel",
}

// genreSlug resolves a genre display name, defaulting to romance
func genreSlug(name string) string {
	if slug, ok := genreSlugs[name]; ok {
		return slug
	}
	return "romance"
}

// sortOrder resolves a sort display name to the site's sortOrder parameter
func sortOrder(name string) string {
	switch name {
	case "愛心排序":
		return "LIKEIT"
	case "最近更新":
		return "UPDATE"
	default:
		return "MANA"
	}
}
