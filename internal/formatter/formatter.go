// package formatter renders deduplication reports and playlist listings (text, JSON, YAML, CSV, Markdown)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/dzdedup/internal/models"
	"github.com/desertthunder/dzdedup/internal/shared"
	"github.com/desertthunder/dzdedup/internal/tasks"
	"gopkg.in/yaml.v3"
)

// Format names an output format accepted by [Write].
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a --format value. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	case FormatText, FormatJSON, FormatYAML, FormatCSV, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// DuplicateEntry is the serialisable form of a duplicate track.
type DuplicateEntry struct {
	Position   int    `json:"position" yaml:"position"`
	ID         string `json:"id" yaml:"id"`
	Title      string `json:"title" yaml:"title"`
	Artist     string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Album      string `json:"album,omitempty" yaml:"album,omitempty"`
	Duration   int    `json:"duration,omitempty" yaml:"duration,omitempty"`
	ISRC       string `json:"isrc,omitempty" yaml:"isrc,omitempty"`
	MatchedOn  string `json:"matched_on" yaml:"matched_on"`
	OriginalID string `json:"original_id" yaml:"original_id"`
}

// PlaylistReport is the serialisable form of a [tasks.PlaylistResult].
type PlaylistReport struct {
	PlaylistID    string           `json:"playlist_id" yaml:"playlist_id"`
	PlaylistTitle string           `json:"playlist_title" yaml:"playlist_title"`
	Outcome       string           `json:"outcome" yaml:"outcome"`
	Fetched       int              `json:"fetched" yaml:"fetched"`
	Summary       string           `json:"summary" yaml:"summary"`
	Error         string           `json:"error,omitempty" yaml:"error,omitempty"`
	Duplicates    []DuplicateEntry `json:"duplicates" yaml:"duplicates"`
}

// Report is the document written for a whole run.
type Report struct {
	DryRun    bool             `json:"dry_run" yaml:"dry_run"`
	Policy    string           `json:"policy" yaml:"policy"`
	Playlists []PlaylistReport `json:"playlists" yaml:"playlists"`
}

// NewReport converts engine results into a [Report].
func NewReport(results []tasks.PlaylistResult, policy string, dryRun bool) Report {
	report := Report{DryRun: dryRun, Policy: policy, Playlists: make([]PlaylistReport, 0, len(results))}
	for _, r := range results {
		pr := PlaylistReport{
			PlaylistID:    r.PlaylistID,
			PlaylistTitle: r.PlaylistTitle,
			Outcome:       r.Outcome.String(),
			Fetched:       r.Fetched,
			Summary:       r.Summary(),
			Duplicates:    make([]DuplicateEntry, 0, len(r.Duplicates)),
		}
		if r.Err != nil {
			pr.Error = r.Err.Error()
		}
		for _, d := range r.Duplicates {
			pr.Duplicates = append(pr.Duplicates, DuplicateEntry{
				Position:   d.Position,
				ID:         d.ID,
				Title:      d.FullTitle(),
				Artist:     d.Artist,
				Album:      d.Album,
				Duration:   d.Duration,
				ISRC:       d.ISRC,
				MatchedOn:  d.Axis.String(),
				OriginalID: d.Original.ID,
			})
		}
		report.Playlists = append(report.Playlists, pr)
	}
	return report
}

// ExportToCSV writes one row per duplicate with columns: Playlist, Outcome, Position, ID, Title, Artist, Album,
// Duration, ISRC, Matched On, Original ID
func ExportToCSV(report Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Playlist", "Outcome", "Position", "ID", "Title", "Artist", "Album", "Duration", "ISRC", "Matched On", "Original ID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, p := range report.Playlists {
		for _, d := range p.Duplicates {
			record := []string{
				p.PlaylistTitle,
				p.Outcome,
				strconv.Itoa(d.Position),
				d.ID,
				d.Title,
				d.Artist,
				d.Album,
				strconv.Itoa(d.Duration),
				d.ISRC,
				d.MatchedOn,
				d.OriginalID,
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders the report as a Markdown document, one section per playlist
func ExportToMarkdown(report Report) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Duplicate songs\n\n")
	fmt.Fprintf(&buf, "**Policy**: %s\n", report.Policy)
	fmt.Fprintf(&buf, "**Mode**: %s\n\n", modeString(report.DryRun))

	for _, p := range report.Playlists {
		fmt.Fprintf(&buf, "## %s\n\n", p.PlaylistTitle)
		fmt.Fprintf(&buf, "%s\n\n", p.Summary)
		for _, d := range p.Duplicates {
			artist := ""
			if d.Artist != "" {
				artist = d.Artist + " - "
			}
			fmt.Fprintf(&buf, "%d. %s%s [%s] (%s)\n", d.Position+1, artist, d.Title, FormatDuration(d.Duration), d.MatchedOn)
		}
		if len(p.Duplicates) > 0 {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText renders one summary line per playlist. Verbose output lists the duplicate titles under each line.
func ExportToText(report Report, verbose bool) ([]byte, error) {
	var buf bytes.Buffer

	for _, p := range report.Playlists {
		buf.WriteString(p.Summary)
		buf.WriteString("\n")
		if !verbose {
			continue
		}
		for _, d := range p.Duplicates {
			fmt.Fprintf(&buf, "  - %s\n", d.Title)
		}
	}

	return buf.Bytes(), nil
}

// ExportToYAML renders any value as YAML.
func ExportToYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders results in the given format to w.
func Write(w io.Writer, report Report, format Format, verbose bool) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatText, "":
		data, err = ExportToText(report, verbose)
	case FormatJSON:
		data, err = shared.MarshalJSON(report, true)
		data = append(data, '\n')
	case FormatYAML:
		data, err = ExportToYAML(report)
	case FormatCSV:
		data, err = ExportToCSV(report)
	case FormatMarkdown:
		data, err = ExportToMarkdown(report)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// WritePlaylists renders a playlist listing. Text output uses the "index - title (n songs)" form.
func WritePlaylists(w io.Writer, playlists []models.Playlist, format Format) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatText, "":
		var buf bytes.Buffer
		for _, p := range playlists {
			fmt.Fprintf(&buf, "%d - %s (%d songs)\n", p.Index, p.Title, p.TrackCount)
		}
		data = buf.Bytes()
	case FormatJSON:
		data, err = shared.MarshalJSON(playlists, true)
		data = append(data, '\n')
	case FormatYAML:
		data, err = ExportToYAML(playlists)
	case FormatCSV:
		var buf bytes.Buffer
		writer := csv.NewWriter(&buf)
		_ = writer.Write([]string{"Index", "ID", "Title", "Songs", "Favorites"})
		for _, p := range playlists {
			_ = writer.Write([]string{strconv.Itoa(p.Index), p.ID, p.Title, strconv.Itoa(p.TrackCount), strconv.FormatBool(p.Favorites)})
		}
		writer.Flush()
		data, err = buf.Bytes(), writer.Error()
	case FormatMarkdown:
		var buf bytes.Buffer
		buf.WriteString("# Playlists\n\n")
		for _, p := range playlists {
			fmt.Fprintf(&buf, "%d. %s (%d songs)\n", p.Index, p.Title, p.TrackCount)
		}
		data = buf.Bytes()
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// FormatDuration renders seconds as m:ss, or h:mm:ss past an hour.
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	h, m, s := seconds/3600, (seconds%3600)/60, seconds%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func modeString(dryRun bool) string {
	if dryRun {
		return "dry run"
	}
	return "remove"
}
