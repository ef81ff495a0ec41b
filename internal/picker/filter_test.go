package picker

import (
	"reflect"
	"strings"
	"testing"
)

func TestFilterEmptyQueryMatchesNothing(t *testing.T) {
	catalog := []string{"AAPL", "MSFT"}
	for _, q := range []string{"", "   ", "\t"} {
		if got := Filter(catalog, q); len(got) != 0 {
			t.Fatalf("Filter(%q) = %v, want empty", q, got)
		}
	}
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	got := Filter([]string{"AAPL", "AAPLX", "MSFT"}, "aap")
	want := []string{"AAPL", "AAPLX"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Filter = %v, want %v", got, want)
	}
}

func TestFilterPartitionsCatalogAndKeepsOrder(t *testing.T) {
	catalog := []string{"Gold", "Silver", "Platinum", "KRW/USD", "Crude Oil (Brent)", "goldman", "S&P500"}
	for _, q := range []string{"gold", "L", "/", "(", "&", "zzz", "o"} {
		got := Filter(catalog, q)
		lq := strings.ToLower(q)
		inResult := make(map[string]bool, len(got))
		for _, item := range got {
			inResult[item] = true
			if !strings.Contains(strings.ToLower(item), lq) {
				t.Fatalf("query %q: %q does not contain query", q, item)
			}
		}
		for _, item := range catalog {
			if !inResult[item] && strings.Contains(strings.ToLower(item), lq) {
				t.Fatalf("query %q: %q matches but was dropped", q, item)
			}
		}
		// stable: result is a subsequence of catalog
		j := 0
		for _, item := range catalog {
			if j < len(got) && got[j] == item {
				j++
			}
		}
		if j != len(got) {
			t.Fatalf("query %q: result %v is not in catalog order", q, got)
		}
	}
}

func TestFilterEmptyCatalog(t *testing.T) {
	if got := Filter(nil, "a"); len(got) != 0 {
		t.Fatalf("Filter(nil) = %v", got)
	}
}

func TestEmphasizeMarksEveryOccurrence(t *testing.T) {
	got := Emphasize("AAPL", "aap")
	want := []Segment{{Text: "AAP", Emphasis: true}, {Text: "L"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Emphasize = %#v, want %#v", got, want)
	}

	got = Emphasize("banana", "an")
	want = []Segment{
		{Text: "b"},
		{Text: "an", Emphasis: true},
		{Text: "an", Emphasis: true},
		{Text: "a"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Emphasize = %#v, want %#v", got, want)
	}
}

func TestEmphasizeNonOverlapping(t *testing.T) {
	got := Emphasize("aaaa", "aa")
	want := []Segment{{Text: "aa", Emphasis: true}, {Text: "aa", Emphasis: true}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Emphasize = %#v, want %#v", got, want)
	}
}

func TestEmphasizeTreatsQueryLiterally(t *testing.T) {
	got := Render(Emphasize("S&P500 (Index)", "(in"), func(s string) string { return "<" + s + ">" })
	if got != "S&P500 <(In>dex)" {
		t.Fatalf("Render = %q", got)
	}
}

func TestEmphasizeBlankQuery(t *testing.T) {
	got := Emphasize("MSFT", " ")
	if len(got) != 1 || got[0].Emphasis || got[0].Text != "MSFT" {
		t.Fatalf("Emphasize = %#v", got)
	}
}
