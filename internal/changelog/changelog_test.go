package changelog

import (
	"testing"
)

func TestParse(t *testing.T) {
	content := `# Changelog

## v1.2.0 (2026-02-15)

- Added feature X
- Fixed bug Y

## v1.1.0 (2026-01-15)

- Initial improvements

## 1.0.0

- Initial release
`

	entries := Parse(content)
	if len(entries) != 3 {
		t.Fatalf("Parse returned %d entries, want 3", len(entries))
	}

	if entries[0].Version != "1.2.0" {
		t.Errorf("entries[0].Version = %q, want %q", entries[0].Version, "1.2.0")
	}
	if entries[0].Date != "2026-02-15" {
		t.Errorf("entries[0].Date = %q, want %q", entries[0].Date, "2026-02-15")
	}
	if len(entries[0].Changes) != 2 {
		t.Errorf("entries[0] has %d changes, want 2", len(entries[0].Changes))
	}
	if entries[0].Changes[0] != "Added feature X" {
		t.Errorf("entries[0].Changes[0] = %q, want %q", entries[0].Changes[0], "Added feature X")
	}

	// Header without a v prefix or date still parses
	if entries[2].Version != "1.0.0" {
		t.Errorf("entries[2].Version = %q, want %q", entries[2].Version, "1.0.0")
	}
	if entries[2].Date != "" {
		t.Errorf("entries[2].Date = %q, want empty", entries[2].Date)
	}
}

func TestParseSkipsNonVersionHeaders(t *testing.T) {
	content := `## Unreleased

- Not shipped yet

## v1.0.0 (2026-01-01)

- Initial release
`
	entries := Parse(content)
	if len(entries) != 1 {
		t.Fatalf("Parse returned %d entries, want 1", len(entries))
	}
	if entries[0].Version != "1.0.0" || len(entries[0].Changes) != 1 {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestParseEmpty(t *testing.T) {
	entries := Parse("")
	if len(entries) != 0 {
		t.Errorf("Parse(\"\") returned %d entries, want 0", len(entries))
	}

	entries = Parse("Just some prose\nwith no version headers")
	if len(entries) != 0 {
		t.Errorf("Parse with no headers returned %d entries, want 0", len(entries))
	}
}

func TestParseEmbeddedContent(t *testing.T) {
	entries := Parse(Content)
	if len(entries) == 0 {
		t.Fatal("embedded CHANGELOG.md produced no entries")
	}
	for _, e := range entries {
		if len(e.Changes) == 0 {
			t.Errorf("version %s has no changes listed", e.Version)
		}
	}
	// Entries must be newest-first for GetChangesSince to make sense
	for i := 1; i < len(entries); i++ {
		if CompareVersions(entries[i-1].Version, entries[i].Version) <= 0 {
			t.Errorf("entries out of order: %s before %s", entries[i-1].Version, entries[i].Version)
		}
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		// Equal versions
		{name: "equal versions", a: "1.0.0", b: "1.0.0", want: 0},
		{name: "equal with v prefix", a: "v1.0.0", b: "1.0.0", want: 0},
		{name: "both with v prefix", a: "v2.1.3", b: "v2.1.3", want: 0},

		// Major version differences
		{name: "a major greater", a: "2.0.0", b: "1.0.0", want: 1},
		{name: "b major greater", a: "1.0.0", b: "2.0.0", want: -1},
		{name: "major 10 vs 9", a: "10.0.0", b: "9.0.0", want: 1},

		// Minor version differences
		{name: "a minor greater", a: "1.2.0", b: "1.1.0", want: 1},
		{name: "b minor greater", a: "1.1.0", b: "1.2.0", want: -1},
		{name: "minor 10 vs 9", a: "1.10.0", b: "1.9.0", want: 1},

		// Patch version differences
		{name: "a patch greater", a: "1.0.2", b: "1.0.1", want: 1},
		{name: "b patch greater", a: "1.0.1", b: "1.0.2", want: -1},
		{name: "patch 10 vs 9", a: "1.0.10", b: "1.0.9", want: 1},

		// Mixed differences
		{name: "major trumps minor", a: "2.0.0", b: "1.9.9", want: 1},
		{name: "minor trumps patch", a: "1.2.0", b: "1.1.9", want: 1},

		// Partial versions
		{name: "two part vs three part equal", a: "1.0", b: "1.0.0", want: 0},
		{name: "one part vs three part", a: "1", b: "1.0.0", want: 0},
		{name: "partial greater", a: "2", b: "1.9.9", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareVersions(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    [3]int
	}{
		{name: "full version", version: "1.2.3", want: [3]int{1, 2, 3}},
		{name: "with v prefix", version: "v1.2.3", want: [3]int{1, 2, 3}},
		{name: "two parts", version: "1.2", want: [3]int{1, 2, 0}},
		{name: "one part", version: "1", want: [3]int{1, 0, 0}},
		{name: "empty string", version: "", want: [3]int{0, 0, 0}},
		{name: "large numbers", version: "100.200.300", want: [3]int{100, 200, 300}},
		{name: "invalid part defaults to 0", version: "1.abc.3", want: [3]int{1, 0, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseVersion(tt.version)
			if got != tt.want {
				t.Errorf("parseVersion(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestGetChangesSince(t *testing.T) {
	entries := []Entry{
		{Version: "1.3.0", Date: "2026-03-01", Changes: []string{"Feature C"}},
		{Version: "1.2.0", Date: "2026-02-01", Changes: []string{"Feature B"}},
		{Version: "1.1.0", Date: "2026-01-15", Changes: []string{"Feature A"}},
		{Version: "1.0.0", Date: "2026-01-01", Changes: []string{"Initial release"}},
	}

	tests := []struct {
		name     string
		lastSeen string
		want     []string // versions we expect
	}{
		{
			name:     "empty lastSeen returns all",
			lastSeen: "",
			want:     []string{"1.3.0", "1.2.0", "1.1.0", "1.0.0"},
		},
		{
			name:     "from oldest version",
			lastSeen: "1.0.0",
			want:     []string{"1.3.0", "1.2.0", "1.1.0"},
		},
		{
			name:     "from middle version",
			lastSeen: "1.1.0",
			want:     []string{"1.3.0", "1.2.0"},
		},
		{
			name:     "from newest returns empty",
			lastSeen: "1.3.0",
			want:     []string{},
		},
		{
			name:     "from future version returns empty",
			lastSeen: "2.0.0",
			want:     []string{},
		},
		{
			name:     "with v prefix",
			lastSeen: "v1.1.0",
			want:     []string{"1.3.0", "1.2.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetChangesSince(tt.lastSeen, entries)
			if len(got) != len(tt.want) {
				t.Errorf("GetChangesSince(%q) returned %d entries, want %d", tt.lastSeen, len(got), len(tt.want))
				return
			}
			for i, entry := range got {
				if entry.Version != tt.want[i] {
					t.Errorf("GetChangesSince(%q)[%d].Version = %q, want %q", tt.lastSeen, i, entry.Version, tt.want[i])
				}
			}
		})
	}
}

func TestGetChangesSinceEmpty(t *testing.T) {
	got := GetChangesSince("1.0.0", nil)
	if got != nil {
		t.Errorf("GetChangesSince with nil entries should return nil, got %v", got)
	}

	got = GetChangesSince("1.0.0", []Entry{})
	if len(got) != 0 {
		t.Errorf("GetChangesSince with empty entries should return empty, got %v", got)
	}
}
