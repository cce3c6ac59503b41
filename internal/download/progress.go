package download

import (
	"bytes"
	"regexp"
	"strconv"
)

// progressPattern matches lines like "[download]  42.0% of 10.00MiB at 1.2MiB/s ETA 00:05"
var progressPattern = regexp.MustCompile(`\[download\]\s+(\d+(?:\.\d+)?)%`)

// ParseProgress extracts the integer percentage from a yt-dlp progress line.
// Lines without the pattern report ok=false.
func ParseProgress(line string) (int, bool) {
	m := progressPattern.FindStringSubmatch(line)
	if len(m) < 2 {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return min(max(int(value), 0), 100), true
}

// scanOutputLines is a bufio.SplitFunc that breaks on '\n' or '\r'.
// yt-dlp rewrites progress in place with '\r' when --newline is not honoured.
func scanOutputLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		advance = i + 1
		if data[i] == '\r' {
			if i+1 == len(data) && !atEOF {
				// need one more byte to tell "\r" from "\r\n"
				return 0, nil, nil
			}
			if i+1 < len(data) && data[i+1] == '\n' {
				advance++
			}
		}
		return advance, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
