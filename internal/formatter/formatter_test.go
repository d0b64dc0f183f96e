package formatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/dzdedup/internal/dedupe"
	"github.com/desertthunder/dzdedup/internal/models"
	"github.com/desertthunder/dzdedup/internal/shared"
	"github.com/desertthunder/dzdedup/internal/tasks"
	th "github.com/desertthunder/dzdedup/internal/testing"
	"gopkg.in/yaml.v3"
)

func sampleResults() []tasks.PlaylistResult {
	tracks := []models.Track{
		{ID: "1", Title: "Song One", ISRC: "USRC1", ArtistID: "7", Artist: "Artist One", Album: "Album", Duration: 180},
		{ID: "2", Title: "Song One", Version: " (Live)", ISRC: "USRC1", ArtistID: "7", Artist: "Artist One", Duration: 200},
		{ID: "3", Title: "Song One", ArtistID: "7", Artist: "Artist One", Duration: 3725},
	}
	dups := dedupe.Classify(tracks, dedupe.Both).Duplicates

	return []tasks.PlaylistResult{
		{PlaylistID: "100", PlaylistTitle: "Road Trip", Outcome: tasks.Removed, Fetched: 3, Duplicates: dups},
		{PlaylistID: "200", PlaylistTitle: "Focus", Outcome: tasks.NoDuplicates, Fetched: 12},
		{PlaylistID: "300", PlaylistTitle: "Broken", Outcome: tasks.FetchFailed, Err: shared.ErrFetchFailed},
	}
}

func TestNewReport(t *testing.T) {
	report := NewReport(sampleResults(), "both", false)

	if report.Policy != "both" || report.DryRun {
		t.Errorf("unexpected header %+v", report)
	}
	if len(report.Playlists) != 3 {
		t.Fatalf("expected 3 playlists, got %d", len(report.Playlists))
	}

	first := report.Playlists[0]
	if first.Outcome != "removed" || first.Fetched != 3 {
		t.Errorf("unexpected first playlist %+v", first)
	}
	if len(first.Duplicates) != 2 {
		t.Fatalf("expected 2 duplicates, got %d", len(first.Duplicates))
	}
	if first.Duplicates[0].Title != "Song One (Live)" {
		t.Errorf("expected title with version, got %q", first.Duplicates[0].Title)
	}
	if first.Duplicates[0].MatchedOn != "isrc" || first.Duplicates[1].MatchedOn != "name" {
		t.Errorf("unexpected axes %s, %s", first.Duplicates[0].MatchedOn, first.Duplicates[1].MatchedOn)
	}
	if first.Duplicates[1].OriginalID != "1" {
		t.Errorf("expected original 1, got %s", first.Duplicates[1].OriginalID)
	}

	if report.Playlists[1].Duplicates == nil {
		t.Error("expected empty, non-nil duplicates")
	}
	if report.Playlists[2].Error == "" {
		t.Error("expected error text for failed playlist")
	}
}

func TestExporters(t *testing.T) {
	report := NewReport(sampleResults(), "both", false)

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(report, false)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		lines := strings.Split(strings.TrimSpace(output), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected 3 lines, got %d: %s", len(lines), output)
		}
		if lines[0] != "Removed 2 duplicate songs from playlist 'Road Trip'" {
			t.Errorf("unexpected first line %q", lines[0])
		}
		if lines[1] != "No duplicate songs found in playlist 'Focus'" {
			t.Errorf("unexpected second line %q", lines[1])
		}
		if strings.Contains(output, "Song One") {
			t.Error("non-verbose output must not list titles")
		}
	})

	t.Run("ExportToText Verbose", func(t *testing.T) {
		data, err := ExportToText(report, true)
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, "  - Song One (Live)\n") {
			t.Errorf("verbose output missing duplicate title, got: %s", output)
		}
	})

	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(report)
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Playlist,Outcome,Position,ID,Title,Artist,Album,Duration,ISRC,Matched On,Original ID\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Road Trip,removed,1,2,Song One (Live),Artist One,,200,USRC1,isrc,1") {
			t.Errorf("CSV missing duplicate row, got: %s", output)
		}

		rows := strings.Split(strings.TrimSpace(output), "\n")
		if len(rows) != 3 {
			t.Errorf("expected header plus 2 rows, got %d", len(rows))
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(report)
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Duplicate songs",
			"**Policy**: both",
			"**Mode**: remove",
			"## Road Trip",
			"2. Artist One - Song One (Live) [3:20] (isrc)",
			"3. Artist One - Song One [1:02:05] (name)",
			"## Focus",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("ExportToYAML", func(t *testing.T) {
		data, err := ExportToYAML(report)
		if err != nil {
			t.Fatalf("ExportToYAML failed: %v", err)
		}

		var decoded Report
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("output is not valid YAML: %v", err)
		}
		if len(decoded.Playlists) != 3 || decoded.Playlists[0].PlaylistTitle != "Road Trip" {
			t.Errorf("unexpected decoded report %+v", decoded)
		}
		if !strings.Contains(string(data), "matched_on: isrc") {
			t.Errorf("YAML missing snake_case keys, got: %s", data)
		}
	})
}

func TestWrite(t *testing.T) {
	report := NewReport(sampleResults(), "both", true)

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		if err := Write(&buf, report, FormatJSON, false); err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		var decoded map[string]any
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded["dry_run"] != true {
			t.Errorf("expected dry_run true, got %v", decoded["dry_run"])
		}
		if !strings.HasSuffix(buf.String(), "\n") {
			t.Error("expected trailing newline")
		}
	})

	t.Run("Each Format", func(t *testing.T) {
		for _, f := range []Format{FormatText, FormatJSON, FormatYAML, FormatCSV, FormatMarkdown} {
			t.Run(string(f), func(t *testing.T) {
				var buf bytes.Buffer
				if err := Write(&buf, report, f, true); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
				if buf.Len() == 0 {
					t.Error("expected output")
				}
			})
		}
	})

	t.Run("Unknown Format", func(t *testing.T) {
		var buf bytes.Buffer
		err := Write(&buf, report, Format("xml"), false)
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("Write Error", func(t *testing.T) {
		if err := Write(&th.FWriter{}, report, FormatText, false); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}

func TestWritePlaylists(t *testing.T) {
	playlists := []models.Playlist{
		{Index: 0, ID: "200", Title: "Loved Tracks", TrackCount: 30, Favorites: true},
		{Index: 1, ID: "100", Title: "Road Trip", TrackCount: 12},
	}

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WritePlaylists(&buf, playlists, FormatText); err != nil {
			t.Fatalf("WritePlaylists failed: %v", err)
		}
		want := "0 - Loved Tracks (30 songs)\n1 - Road Trip (12 songs)\n"
		if buf.String() != want {
			t.Errorf("got %q, want %q", buf.String(), want)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WritePlaylists(&buf, playlists, FormatCSV); err != nil {
			t.Fatalf("WritePlaylists failed: %v", err)
		}
		if !strings.Contains(buf.String(), "0,200,Loved Tracks,30,true") {
			t.Errorf("unexpected CSV %s", buf.String())
		}
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		if err := WritePlaylists(&buf, playlists, FormatJSON); err != nil {
			t.Fatalf("WritePlaylists failed: %v", err)
		}
		var decoded []models.Playlist
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if len(decoded) != 2 || !decoded[0].Favorites {
			t.Errorf("unexpected decoded playlists %+v", decoded)
		}
	})

	t.Run("Write Error", func(t *testing.T) {
		if err := WritePlaylists(&th.FWriter{}, playlists, FormatYAML); err == nil {
			t.Error("expected error from failing writer")
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"yml", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"csv", FormatCSV, false},
		{"md", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{59, "0:59"},
		{200, "3:20"},
		{3725, "1:02:05"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
