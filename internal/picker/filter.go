// Package picker holds the autocomplete multi-select state machines shared
// by the terminal UI: substring filtering, the highlight cursor and the
// selection mirror.
//
// Nothing in here renders. Rendering goes through the Surface interface so
// the same logic drives any front end.
package picker

import "strings"

// Filter returns every catalog entry that contains query as a
// case-insensitive substring, in catalog order. An empty (or blank) query
// matches nothing.
func Filter(catalog []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	out := make([]string, 0, len(catalog))
	for _, item := range catalog {
		if strings.Contains(strings.ToLower(item), q) {
			out = append(out, item)
		}
	}
	return out
}

// Segment is a run of display text, emphasized when it matched the query.
type Segment struct {
	Text     string
	Emphasis bool
}

// Emphasize splits text into segments where every case-insensitive,
// non-overlapping occurrence of query is emphasized. The scan runs left to
// right and the first match wins. Query is matched literally.
func Emphasize(text, query string) []Segment {
	q := strings.TrimSpace(query)
	if q == "" || text == "" {
		return []Segment{{Text: text}}
	}
	lowerText := []rune(strings.ToLower(text))
	lowerQuery := []rune(strings.ToLower(q))
	runes := []rune(text)
	// Lowercasing can change rune counts for a handful of scripts; fall back
	// to plain text rather than slicing at the wrong offsets.
	if len(lowerText) != len(runes) {
		return []Segment{{Text: text}}
	}

	var out []Segment
	plainStart := 0
	for i := 0; i+len(lowerQuery) <= len(lowerText); {
		if !hasRunePrefix(lowerText[i:], lowerQuery) {
			i++
			continue
		}
		if i > plainStart {
			out = append(out, Segment{Text: string(runes[plainStart:i])})
		}
		end := i + len(lowerQuery)
		out = append(out, Segment{Text: string(runes[i:end]), Emphasis: true})
		i = end
		plainStart = end
	}
	if plainStart < len(runes) {
		out = append(out, Segment{Text: string(runes[plainStart:])})
	}
	return out
}

// Render joins segments, passing emphasized runs through emph.
func Render(segs []Segment, emph func(string) string) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Emphasis && emph != nil {
			b.WriteString(emph(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

func hasRunePrefix(s, prefix []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}
