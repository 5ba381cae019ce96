package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Output format names accepted by the renderers.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// tabwriterPadding is the minimum padding between columns.
const tabwriterPadding = 2

// Render writes rep in the given format.
func Render(w io.Writer, format string, rep Report) error {
	switch format {
	case FormatTable:
		return RenderTable(w, rep)
	case FormatJSON:
		return writeJSON(w, rep)
	case FormatNDJSON:
		return RenderNDJSON(w, rep)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// RenderTable writes the citation banner followed by each section as a
// two-column label/value table.
func RenderTable(w io.Writer, rep Report) error {
	if err := writeBanner(w); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	for i, s := range rep.Sections {
		if i > 0 {
			if _, err := fmt.Fprintln(tw); err != nil {
				return fmt.Errorf("writing section break: %w", err)
			}
		}
		if _, err := fmt.Fprintf(tw, "%s\n%s\n", s.Title, strings.Repeat("-", len(s.Title))); err != nil {
			return fmt.Errorf("writing section header: %w", err)
		}
		if s.Title == SectionSite && rep.Alert != nil {
			if _, err := fmt.Fprintf(tw, "⚠ %s: %s\n", rep.Alert.Title, rep.Alert.Message); err != nil {
				return fmt.Errorf("writing alert: %w", err)
			}
		}
		for _, l := range s.Lines {
			if _, err := fmt.Fprintf(tw, "%s:\t%s\n", l.Label, l.Display); err != nil {
				return fmt.Errorf("writing row: %w", err)
			}
		}
	}
	return tw.Flush()
}

// ndjsonLine is one NDJSON record: a line tagged with its section.
type ndjsonLine struct {
	Section string `json:"section"`
	Line
}

// RenderNDJSON writes one JSON object per quantity. The alert, when active,
// is a final record with section "alert".
func RenderNDJSON(w io.Writer, rep Report) error {
	for _, s := range rep.Sections {
		for _, l := range s.Lines {
			if err := writeNDJSONRecord(w, ndjsonLine{Section: s.Title, Line: l}); err != nil {
				return err
			}
		}
	}
	if rep.Alert != nil {
		return writeNDJSONRecord(w, struct {
			Section string `json:"section"`
			Alert
		}{Section: "alert", Alert: *rep.Alert})
	}
	return nil
}

func writeBanner(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", Title, Citation); err != nil {
		return fmt.Errorf("writing banner: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func writeNDJSONRecord(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}
	if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
		return fmt.Errorf("writing NDJSON line: %w", err)
	}
	return nil
}
