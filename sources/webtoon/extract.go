package webtoon

import "strings"

// queryParam scans s for the literal "key=" and returns everything up to the
// next '&' or the end of the string. No URL parsing or unescaping happens;
// the site's links are plain enough that a substring scan is exact.
func queryParam(s, key string) (string, bool) {
	idx := strings.Index(s, key+"=")
	if idx < 0 {
		return "", false
	}

	rest := s[idx+len(key)+1:]
	if amp := strings.IndexByte(rest, '&'); amp >= 0 {
		rest = rest[:amp]
	}
	return rest, true
}

// titleNoFromURL extracts the series identifier from a site URL
func titleNoFromURL(url string) (string, bool) {
	return queryParam(url, "title_no")
}

// episodeNoFromURL extracts the episode number from a viewer URL
func episodeNoFromURL(url string) (string, bool) {
	return queryParam(url, "episode_no")
}
