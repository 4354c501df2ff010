package lyrics

import (
	"bufio"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Line is one timed lyric line, StartMs being the offset from the track start.
type Line struct {
	StartMs int64  `json:"start_ms"`
	Text    string `json:"text"`
}

var timestampPattern = regexp.MustCompile(`\[(\d+):(\d{1,2})(?:[.:](\d{1,3}))?\]`)

// ParseLRC reads synced lyrics in LRC format. A line may carry several
// timestamps; tag lines such as [ar:...] and untimed lines are ignored.
func ParseLRC(lrc string) []Line {
	var lines []Line
	scanner := bufio.NewScanner(strings.NewReader(lrc))
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		var stamps []int64
		for {
			loc := timestampPattern.FindStringSubmatchIndex(raw)
			if loc == nil || loc[0] != 0 {
				break
			}
			stamps = append(stamps, toMillis(
				raw[loc[2]:loc[3]],
				raw[loc[4]:loc[5]],
				submatch(raw, loc, 3),
			))
			raw = raw[loc[1]:]
		}
		if len(stamps) == 0 {
			continue
		}
		text := strings.TrimSpace(raw)
		for _, ms := range stamps {
			lines = append(lines, Line{StartMs: ms, Text: text})
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].StartMs < lines[j].StartMs })
	return lines
}

func submatch(s string, loc []int, group int) string {
	if loc[2*group] < 0 {
		return ""
	}
	return s[loc[2*group]:loc[2*group+1]]
}

func toMillis(minutes, seconds, fraction string) int64 {
	m, _ := strconv.ParseInt(minutes, 10, 64)
	s, _ := strconv.ParseInt(seconds, 10, 64)
	ms := (m*60 + s) * 1000
	if fraction == "" {
		return ms
	}
	f, _ := strconv.ParseInt(fraction, 10, 64)
	switch len(fraction) {
	case 1:
		f *= 100
	case 2:
		f *= 10
	}
	return ms + f
}
