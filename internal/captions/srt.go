package captions

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSRT parses SRT subtitle text into ordered fragments.
//
//	1									sequence number
//	00:00:00,000 --> 00:00:01,830		start --> end
//	I'm happy to						line
//	have you here today.				line
//
// Multi-line cues are space-joined into one fragment.
func ParseSRT(content string) ([]Fragment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	var fragments []Fragment
	var start, end float64
	var haveTiming bool
	var text strings.Builder

	flush := func() {
		if haveTiming && text.Len() > 0 {
			fragments = append(fragments, Fragment{
				Text:     text.String(),
				Start:    start,
				Duration: end - start,
			})
			haveTiming = false
		}
		text.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		// Blank line ends the current cue
		if line == "" {
			flush()
			continue
		}

		// Skip sequence numbers
		if isDigitOnly(line) && text.Len() == 0 {
			continue
		}

		// Timestamp line: HH:MM:SS,mmm --> HH:MM:SS,mmm
		if strings.Contains(line, "-->") {
			flush()
			parts := strings.Split(line, "-->")
			if len(parts) != 2 {
				continue
			}
			s, err := parseSRTTime(strings.TrimSpace(parts[0]))
			if err != nil {
				return nil, fmt.Errorf("parse start time: %w", err)
			}
			e, err := parseSRTTime(strings.TrimSpace(parts[1]))
			if err != nil {
				return nil, fmt.Errorf("parse end time: %w", err)
			}
			start, end = s, e
			haveTiming = true
			continue
		}

		if text.Len() > 0 {
			text.WriteString(" ")
		}
		text.WriteString(line)
	}
	flush()

	if err := ValidateFragments(fragments); err != nil {
		return nil, fmt.Errorf("validate SRT fragments: %w", err)
	}

	return fragments, nil
}

// parseSRTTime converts "HH:MM:SS,mmm" (or "HH:MM:SS.mmm") to seconds
func parseSRTTime(ts string) (float64, error) {
	ts = strings.ReplaceAll(ts, ",", ".")
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed timestamp %q", ts)
	}

	return float64(hours)*3600 + float64(minutes)*60 + seconds, nil
}

// isDigitOnly checks if a string contains only digits
func isDigitOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
