package webtoon

import (
	"strconv"
	"time"
)

// parseDate converts the site's "Y年M月D日" date text into a midnight UTC
// timestamp. Digit runs accumulate until the next expected separator; any
// other character is skipped. The separators must appear in order, and a
// missing component means no date.
func parseDate(s string) (*time.Time, bool) {
	var year, month, day int64

	var buf []rune
	state := 0

	for _, ch := range s {
		switch {
		case ch >= '0' && ch <= '9':
			buf = append(buf, ch)
		case ch == '年' && state == 0:
			year = parseInt(buf)
			buf = buf[:0]
			state = 1
		case ch == '月' && state == 1:
			month = parseInt(buf)
			buf = buf[:0]
			state = 2
		case ch == '日' && state == 2:
			day = parseInt(buf)
			buf = buf[:0]
		}
	}

	if year == 0 || month == 0 || day == 0 {
		return nil, false
	}

	var days int64
	for y := int64(1970); y < year; y++ {
		if isLeapYear(y) {
			days += 366
		} else {
			days += 365
		}
	}

	monthDays := [12]int64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for m := int64(1); m < month; m++ {
		idx := m - 1
		if idx < 12 {
			days += monthDays[idx]
			if m == 2 && isLeapYear(year) {
				days++
			}
		}
	}

	days += day - 1

	t := time.Unix(days*86400, 0).UTC()
	return &t, true
}

func parseInt(buf []rune) int64 {
	n, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isLeapYear(year int64) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}
