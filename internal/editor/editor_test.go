package editor

import (
	"testing"

	"graphide/internal/engine/buffer"
)

func TestSetCursorPositionClamps(t *testing.T) {
	e := New("ab\ncd")
	e.SetCursorPosition(9, 9)
	line, col := e.CursorPosition()
	if line != 1 || col != 2 {
		t.Errorf("expected clamped cursor (1,2), got (%d,%d)", line, col)
	}
}

func TestSetSelectionLeavesCursorAtTo(t *testing.T) {
	e := New("hello world")
	e.SetSelection(0, 5, 0, 0)
	line, col := e.CursorPosition()
	if line != 0 || col != 0 {
		t.Errorf("expected cursor at selection end (0,0), got (%d,%d)", line, col)
	}
	from, to, ok := e.Selection()
	if !ok {
		t.Fatal("expected active selection")
	}
	if (from != buffer.Point{Line: 0, Col: 5}) || (to != buffer.Point{}) {
		t.Errorf("unexpected selection %v..%v", from, to)
	}
}

func TestStringAtMultibyte(t *testing.T) {
	e := New("naïve\ntext")
	// "ï" is two bytes; the match "naïve" spans six bytes.
	if got := e.StringAt(0, 6); got != "naïve" {
		t.Errorf("expected %q, got %q", "naïve", got)
	}
}

func TestEnsureLineVisible(t *testing.T) {
	text := ""
	for i := 0; i < 100; i++ {
		text += "line\n"
	}
	e := New(text, WithViewHeight(10))

	e.EnsureLineVisible(50)
	if got := e.FirstVisibleLine(); got != 41 {
		t.Errorf("expected first visible 41, got %d", got)
	}
	e.EnsureLineVisible(45)
	if got := e.FirstVisibleLine(); got != 41 {
		t.Errorf("expected scroll unchanged for visible line, got %d", got)
	}
	e.EnsureLineVisible(5)
	if got := e.FirstVisibleLine(); got != 5 {
		t.Errorf("expected first visible 5, got %d", got)
	}
}

func TestCursorObservers(t *testing.T) {
	e := New("abc")
	moves := 0
	cancel := e.OnCursorMoved(func() { moves++ })
	e.SetCursorPosition(0, 1)
	if moves != 1 {
		t.Fatalf("expected 1 notification, got %d", moves)
	}
	cancel()
	e.SetCursorPosition(0, 2)
	if moves != 1 {
		t.Errorf("expected no notification after cancel, got %d", moves)
	}
}

func TestIndicatorRanges(t *testing.T) {
	e := New("abcdef")
	e.SetIndicatorRange(IndicatorSearch, 3, 2)
	e.SetIndicatorRange(IndicatorSearch, 0, 1)
	got := e.IndicatorRanges(IndicatorSearch)
	if len(got) != 2 || got[0].Start != 0 || got[1].Start != 3 {
		t.Fatalf("expected sorted ranges at 0 and 3, got %v", got)
	}
	e.ClearIndicatorRange(IndicatorSearch, 0, 1)
	if got := e.IndicatorRanges(IndicatorSearch); len(got) != 1 {
		t.Errorf("expected 1 range after clear, got %v", got)
	}
	e.ClearIndicators(IndicatorSearch)
	if got := e.IndicatorRanges(IndicatorSearch); len(got) != 0 {
		t.Errorf("expected no ranges after clear all, got %v", got)
	}
}
