// Package lyrics provides LRC lyrics parsing and time-based line lookup.
package lyrics

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Untimed marks a line that carries no timestamp (plain-text lyrics).
const Untimed int64 = -1

// Line is a single lyric line. Time is in milliseconds from the start of
// the track, or Untimed.
type Line struct {
	Time int64  `json:"time"`
	Text string `json:"text"`
}

// Document holds the result of parsing an LRC text: metadata tags plus the
// lyric lines sorted ascending by time. Lines sharing a timestamp keep
// their file order.
type Document struct {
	Metadata map[string]string `json:"metadata"`
	Lines    []Line            `json:"lines"`
}

var (
	// Matches timestamps like [00:12.34], [00:12.345] or [00:12].
	timestampRe = regexp.MustCompile(`\[(\d+):(\d{2})(?:[.:](\d{2,3}))?\]`)

	// Matches metadata tags like [ar:Artist Name].
	metadataRe = regexp.MustCompile(`^\[([a-zA-Z]+):(.*)\]$`)
)

// Metadata tags recognized in LRC headers. Anything else that looks like a
// tag but isn't listed here is ignored rather than misread as a lyric.
var knownMetadataTags = map[string]bool{
	"ar":     true,
	"ti":     true,
	"al":     true,
	"by":     true,
	"offset": true,
}

// Parse parses LRC-format lyric text. A physical line with several
// timestamps expands to one Line per timestamp, all sharing the text.
func Parse(text string) Document {
	doc := Document{Metadata: make(map[string]string)}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if meta := metadataRe.FindStringSubmatch(line); meta != nil {
			tag := strings.ToLower(meta[1])
			if knownMetadataTags[tag] {
				doc.Metadata[tag] = strings.TrimSpace(meta[2])
				continue
			}
		}

		matches := timestampRe.FindAllStringSubmatch(line, -1)
		if len(matches) == 0 {
			continue
		}
		text := strings.TrimSpace(timestampRe.ReplaceAllString(line, ""))

		for _, m := range matches {
			ms, err := parseTimestamp(m)
			if err != nil {
				continue
			}
			doc.Lines = append(doc.Lines, Line{Time: ms, Text: text})
		}
	}

	// Stable sort keeps file order for lines sharing a timestamp.
	sort.SliceStable(doc.Lines, func(i, j int) bool {
		return doc.Lines[i].Time < doc.Lines[j].Time
	})

	return doc
}

// parseTimestamp converts a timestampRe submatch into milliseconds.
func parseTimestamp(m []string) (int64, error) {
	minutes, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, err
	}

	var millis int
	if m[3] != "" {
		millis, err = strconv.Atoi(m[3])
		if err != nil {
			return 0, err
		}
		// Two digits is centiseconds, three is milliseconds.
		if len(m[3]) == 2 {
			millis *= 10
		}
	}

	return int64(minutes)*60_000 + int64(seconds)*1000 + int64(millis), nil
}

// Offset returns the [offset:...] metadata value in milliseconds, or 0 if
// absent or unparsable.
func (d Document) Offset() int64 {
	raw, ok := d.Metadata["offset"]
	if !ok {
		return 0
	}
	ms, err := strconv.ParseInt(strings.TrimPrefix(raw, "+"), 10, 64)
	if err != nil {
		return 0
	}
	return ms
}

// Locate returns the index of the greatest line whose time is at or before
// currentMs+offsetMs, or -1 if the adjusted time precedes the first line.
// Lines must be sorted ascending by time.
func Locate(lines []Line, currentMs, offsetMs int64) int {
	if len(lines) == 0 {
		return -1
	}

	adjusted := currentMs + offsetMs

	low, high := 0, len(lines)-1
	result := -1
	for low <= high {
		mid := low + (high-low)/2
		if lines[mid].Time <= adjusted {
			result = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return result
}

// IsSynced reports whether the text contains LRC timestamps.
func IsSynced(text string) bool {
	return timestampRe.MatchString(text)
}

// PlainLines converts plain lyric text into untimed lines, one per
// non-empty physical line.
func PlainLines(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		t := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if t == "" {
			continue
		}
		lines = append(lines, Line{Time: Untimed, Text: t})
	}
	return lines
}

// FormatTime renders milliseconds as mm:ss.cc for display.
func FormatTime(ms int64) string {
	if ms < 0 {
		return "00:00.00"
	}
	totalSeconds := ms / 1000
	return fmt.Sprintf("%02d:%02d.%02d", totalSeconds/60, totalSeconds%60, (ms%1000)/10)
}
