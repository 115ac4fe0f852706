// Package changelog parses the embedded CHANGELOG.md into version entries,
// so the app can show what changed since the version the user last ran.
package changelog

import (
	"bufio"
	_ "embed"
	"strconv"
	"strings"
)

//go:embed CHANGELOG.md
var Content string

// Entry is one released version and its list of changes.
type Entry struct {
	Version string
	Date    string
	Changes []string
}

// Parse extracts entries from markdown content. A version header looks like
// "## v1.2.0 (2026-02-15)"; the v prefix and the date are both optional.
// Bullet lines under a header become that version's changes; anything before
// the first header is ignored.
func Parse(content string) []Entry {
	var entries []Entry

	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())

		if version, date, ok := parseHeader(line); ok {
			entries = append(entries, Entry{Version: version, Date: date, Changes: []string{}})
			continue
		}
		if len(entries) == 0 {
			continue
		}
		if item, found := strings.CutPrefix(line, "- "); found {
			cur := &entries[len(entries)-1]
			cur.Changes = append(cur.Changes, item)
		}
	}
	return entries
}

// parseHeader recognizes a version header line and splits it into version
// and date. Headers that are not three dot-separated numbers ("## Unreleased")
// are not entries.
func parseHeader(line string) (version, date string, ok bool) {
	rest, found := strings.CutPrefix(line, "## ")
	if !found {
		return "", "", false
	}
	rest = strings.TrimSpace(rest)

	version = rest
	if open := strings.IndexByte(rest, '('); open >= 0 {
		version = strings.TrimSpace(rest[:open])
		if end := strings.IndexByte(rest[open:], ')'); end >= 0 {
			date = rest[open+1 : open+end]
		}
	}

	parts := strings.Split(strings.TrimPrefix(version, "v"), ".")
	if len(parts) != 3 {
		return "", "", false
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return "", "", false
		}
	}
	return strings.TrimPrefix(version, "v"), date, true
}

// GetChangesSince filters entries down to versions newer than lastSeen,
// preserving their order (newest first). An empty lastSeen means the user
// has never run the app, so everything is new.
func GetChangesSince(lastSeen string, entries []Entry) []Entry {
	if lastSeen == "" {
		return entries
	}

	var newer []Entry
	for _, e := range entries {
		if CompareVersions(e.Version, lastSeen) > 0 {
			newer = append(newer, e)
		}
	}
	return newer
}

// CompareVersions orders two semantic versions: -1 if a < b, 0 if equal,
// 1 if a > b. A leading v and missing components are tolerated.
func CompareVersions(a, b string) int {
	av, bv := parseVersion(a), parseVersion(b)
	for i := range av {
		switch {
		case av[i] < bv[i]:
			return -1
		case av[i] > bv[i]:
			return 1
		}
	}
	return 0
}

// parseVersion reads up to three numeric components; missing or malformed
// components count as zero.
func parseVersion(v string) [3]int {
	var out [3]int
	parts := strings.Split(strings.TrimPrefix(v, "v"), ".")
	for i := 0; i < len(parts) && i < len(out); i++ {
		if n, err := strconv.Atoi(parts[i]); err == nil {
			out[i] = n
		}
	}
	return out
}
