package editor

import (
	"testing"
)

func TestTargetsAscendingOrder(t *testing.T) {
	e := New("cat dog cat\ncat")
	got := e.Targets("cat", false, true, false, 0, 0, -1, -1)
	want := []Match{{0, 0, 3}, {0, 8, 3}, {1, 0, 3}}
	if len(got) != len(want) {
		t.Fatalf("expected %d matches, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("match %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestTargetsOptions(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		query         string
		regex, cs, ww bool
		want          int
	}{
		{"case sensitive", "Cat cat CAT", "cat", false, true, false, 1},
		{"case insensitive", "Cat cat CAT", "cat", false, false, false, 3},
		{"whole word", "cat catalog cat", "cat", false, true, true, 2},
		{"word and case combined", "Cat catalog cat", "cat", false, false, true, 2},
		{"regex", "a1 b2 c3", `[a-c]\d`, true, true, false, 3},
		{"regex with word", "ab abc", `ab`, true, true, true, 1},
		{"literal metacharacters", "a.c abc", "a.c", false, true, false, 1},
		{"invalid regex", "anything", "[", true, true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.text)
			got := e.Targets(tt.query, tt.regex, tt.cs, tt.ww, 0, 0, -1, -1)
			if len(got) != tt.want {
				t.Errorf("expected %d matches, got %d (%v)", tt.want, len(got), got)
			}
		})
	}
}

func TestTargetsScanRange(t *testing.T) {
	e := New("aa aa aa")
	// Matches fully inside [3, 5) only.
	got := e.Targets("aa", false, true, false, 0, 3, 0, 5)
	if len(got) != 1 || got[0].Col != 3 {
		t.Fatalf("expected single match at col 3, got %v", got)
	}
	// Start past end yields nothing.
	if got := e.Targets("aa", false, true, false, 0, 6, 0, 2); got != nil {
		t.Errorf("expected nil for inverted range, got %v", got)
	}
}

func TestTargetsSkipsZeroLengthMatches(t *testing.T) {
	e := New("abc")
	if got := e.Targets("x*", true, true, false, 0, 0, -1, -1); len(got) != 0 {
		t.Errorf("expected no zero-length matches, got %v", got)
	}
}

func TestHighlightMatchPaintsAllOccurrences(t *testing.T) {
	e := New("foo bar foo\nfoo")
	m := e.HighlightMatch("foo", 0, 0, false, true, false, false, false)
	if (m != Match{0, 0, 3}) {
		t.Fatalf("expected first match at (0,0), got %v", m)
	}
	if got := len(e.IndicatorRanges(IndicatorSearch)); got != 3 {
		t.Errorf("expected 3 painted occurrences, got %d", got)
	}
}

func TestHighlightMatchFromPosition(t *testing.T) {
	e := New("foo bar foo")
	m := e.HighlightMatch("foo", 0, 1, false, true, false, false, false)
	if (m != Match{0, 8, 3}) {
		t.Errorf("expected match at col 8, got %v", m)
	}
}

func TestHighlightMatchNoWrap(t *testing.T) {
	e := New("foo bar")
	m := e.HighlightMatch("foo", 0, 4, false, true, false, false, false)
	if m.Found() {
		t.Errorf("expected no match past the last occurrence, got %v", m)
	}
}

func TestHighlightMatchSelects(t *testing.T) {
	e := New("say foo now")
	m := e.HighlightMatch("foo", 0, 0, false, true, false, true, true)
	if !m.Found() {
		t.Fatal("expected a match")
	}
	line, col := e.CursorPosition()
	if line != 0 || col != 4 {
		t.Errorf("expected cursor at match start (0,4), got (%d,%d)", line, col)
	}
}

func TestFindTargetReplaceCycle(t *testing.T) {
	e := New("aXaXa")
	if !e.FindFirstTarget("a", false, true, false, 0, 0) {
		t.Fatal("expected first target")
	}
	count := 0
	e.BeginUndoAction()
	for {
		if !e.ReplaceTarget("b") {
			t.Fatal("expected replacement to succeed")
		}
		count++
		if !e.FindNextTarget() {
			break
		}
	}
	e.EndUndoAction()

	if count != 3 {
		t.Errorf("expected 3 replacements, got %d", count)
	}
	if got := e.Text(); got != "bXbXb" {
		t.Errorf("expected %q, got %q", "bXbXb", got)
	}
	if err := e.Undo(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Text(); got != "aXaXa" {
		t.Errorf("expected single undo to restore, got %q", got)
	}
}

func TestReplaceTargetSkipsOwnReplacement(t *testing.T) {
	// Replacing "text" with "prefix_text" must not re-find the
	// just-inserted text.
	e := New("text and text")
	if !e.FindFirstTarget("text", false, true, false, 0, 0) {
		t.Fatal("expected first target")
	}
	if !e.ReplaceTarget("prefix_text") {
		t.Fatal("expected replacement to succeed")
	}
	if !e.FindNextTarget() {
		t.Fatal("expected to find the second occurrence")
	}
	if !e.ReplaceTarget("prefix_text") {
		t.Fatal("expected second replacement to succeed")
	}
	if e.FindNextTarget() {
		t.Error("expected no further targets")
	}
	if got := e.Text(); got != "prefix_text and prefix_text" {
		t.Errorf("unexpected result %q", got)
	}
}

func TestReplaceTargetReadOnly(t *testing.T) {
	e := New("abc", WithReadOnly())
	if !e.FindFirstTarget("abc", false, true, false, 0, 0) {
		t.Fatal("expected target to be found")
	}
	if e.ReplaceTarget("x") {
		t.Error("expected replacement to fail on read-only editor")
	}
}

func TestReplaceTargetWithoutFind(t *testing.T) {
	e := New("abc")
	if e.ReplaceTarget("x") {
		t.Error("expected replacement to fail without a current target")
	}
}

func TestFindFirstTargetNegativeStart(t *testing.T) {
	e := New("zz hit")
	if !e.FindFirstTarget("hit", false, true, false, -1, -1) {
		t.Error("expected negative start to scan from document top")
	}
}
