package logs

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
)

// Levels recognized by the filter, matching zerolog's level names.
var Levels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}

func validLevel(level string) bool {
	for _, l := range Levels {
		if l == level {
			return true
		}
	}
	return false
}

// Read returns log lines from the file with optional level and substring
// filtering, then offset/limit pagination. The second return value is the
// total matching count before pagination. A missing file yields an empty
// result, not an error: the endpoint exists for log review and should not
// fail when nothing was logged yet.
func Read(path, level, query string, offset, limit int) ([]string, int, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	defer file.Close()

	level = strings.ToLower(strings.TrimSpace(level))
	if level != "" && !validLevel(level) {
		// Unknown level -> empty result for clarity.
		return nil, 0, nil
	}

	var filtered []string
	queryLower := strings.ToLower(query)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if level != "" && lineLevel(line) != level {
			continue
		}
		if queryLower != "" && !strings.Contains(strings.ToLower(line), queryLower) {
			continue
		}
		filtered = append(filtered, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, err
	}

	total := len(filtered)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 100
	}
	if offset >= total {
		return []string{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return filtered[offset:end], total, nil
}

// lineLevel extracts the level field from a JSON log line; lines that are
// not JSON report an empty level and only match unfiltered reads.
func lineLevel(line string) string {
	var entry struct {
		Level string `json:"level"`
	}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return ""
	}
	return strings.ToLower(entry.Level)
}
