package webtoon

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"Lantern/engine"
)

// episodesFromJSON decodes a mobile API response and builds chapters from its
// episodeList array, wherever that sits in the payload. The API returns
// episodes oldest-first; the result is reversed to newest-first. Elements
// that are not objects or lack an episode number are skipped.
func (s *Source) episodesFromJSON(body []byte, titleNo string) ([]engine.Chapter, error) {
	var tree interface{}
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("failed to decode episode list: %w", err)
	}

	list, ok := findArray(tree, "episodeList")
	if !ok {
		return nil, nil
	}

	chapters := make([]engine.Chapter, 0, len(list))
	for _, el := range list {
		obj, ok := el.(map[string]interface{})
		if !ok {
			continue
		}

		number, ok := numberField(obj, "episodeNo")
		if !ok {
			continue
		}

		viewerURL := s.absoluteURL(stringField(obj, "viewerLink"))
		if viewerURL == "" {
			viewerURL = fmt.Sprintf("%s%s/viewer?title_no=%s&episode_no=%s",
				s.baseURL, s.langPath, titleNo, formatEpisodeNo(number))
		}

		chapter := engine.Chapter{
			ID:        viewerURL,
			Title:     stringField(obj, "episodeTitle"),
			Number:    number,
			URL:       viewerURL,
			Thumbnail: s.absoluteURL(stringField(obj, "thumbnail")),
		}

		if millis, ok := numberField(obj, "exposureDateMillis"); ok {
			t := time.Unix(int64(millis)/1000, 0).UTC()
			chapter.Date = &t
		}

		chapters = append(chapters, chapter)
	}

	for i, j := 0, len(chapters)-1; i < j; i, j = i+1, j-1 {
		chapters[i], chapters[j] = chapters[j], chapters[i]
	}
	return chapters, nil
}

// findArray walks the decoded JSON tree depth-first for an array under key
func findArray(node interface{}, key string) ([]interface{}, bool) {
	switch v := node.(type) {
	case map[string]interface{}:
		if arr, ok := v[key].([]interface{}); ok {
			return arr, true
		}
		for _, child := range v {
			if arr, ok := findArray(child, key); ok {
				return arr, true
			}
		}
	case []interface{}:
		for _, child := range v {
			if arr, ok := findArray(child, key); ok {
				return arr, true
			}
		}
	}
	return nil, false
}

func stringField(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return s
}

func numberField(obj map[string]interface{}, key string) (float64, bool) {
	n, ok := obj[key].(float64)
	return n, ok
}

// absoluteURL turns the API's site-relative paths into full URLs
func (s *Source) absoluteURL(path string) string {
	if path == "" || !strings.HasPrefix(path, "/") {
		return path
	}
	return s.baseURL + path
}

func formatEpisodeNo(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
