package portal

import (
	"errors"
	"reflect"
	"testing"
)

func testSettings(widgets ...Widget) *PortalSettings {
	s := DefaultSettings("user-1")
	s.Layout = append(s.Layout, widgets...)
	return s
}

func testWidget(id string) Widget {
	return Widget{
		ID:       id,
		Type:     WidgetTypeText,
		Title:    "Widget " + id,
		Position: Position{X: 10, Y: 10, Width: 200, Height: 100, ZIndex: 1},
		Config:   map[string]interface{}{"content": "hello"},
	}
}

func TestApplyChangeTheme(t *testing.T) {
	doc := testSettings()

	res, err := Apply(doc, Action{Type: ActionChangeTheme, Theme: ThemeDark})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Settings.Theme != ThemeDark {
		t.Errorf("theme = %v, want dark", res.Settings.Theme)
	}
	if res.Message != "Theme changed to dark." {
		t.Errorf("message = %q", res.Message)
	}
	if doc.Theme != ThemeLight {
		t.Errorf("input document was mutated")
	}

	// Idempotent: applying again succeeds with the same message
	again, err := Apply(res.Settings, Action{Type: ActionChangeTheme, Theme: ThemeDark})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Settings.Theme != ThemeDark || again.Message != res.Message {
		t.Errorf("second apply diverged: %+v", again)
	}
}

func TestApplyAddWidget(t *testing.T) {
	doc := testSettings(testWidget("a"), testWidget("b"))
	w := testWidget("c")

	res, err := Apply(doc, Action{Type: ActionAddWidget, Widget: &w})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Settings.Layout) != len(doc.Layout)+1 {
		t.Fatalf("layout length = %d, want %d", len(res.Settings.Layout), len(doc.Layout)+1)
	}

	// The widget lands at the end with its fields preserved exactly
	last := res.Settings.Layout[len(res.Settings.Layout)-1]
	if !reflect.DeepEqual(last, w) {
		t.Errorf("appended widget = %+v, want %+v", last, w)
	}
	if res.Message != `Added widget "Widget c".` {
		t.Errorf("message = %q", res.Message)
	}
	if len(doc.Layout) != 2 {
		t.Errorf("input layout was mutated")
	}
}

func TestApplyAddWidgetIDConflict(t *testing.T) {
	doc := testSettings(testWidget("a"))
	dup := testWidget("a")

	_, err := Apply(doc, Action{Type: ActionAddWidget, Widget: &dup})
	if !errors.Is(err, ErrWidgetIDConflict) {
		t.Fatalf("err = %v, want ErrWidgetIDConflict", err)
	}
	if len(doc.Layout) != 1 {
		t.Errorf("document must be left unmodified on conflict")
	}
}

func TestApplySetAllFullscreen(t *testing.T) {
	a := testWidget("a")
	a.Minimized = true
	b := testWidget("b")
	b.Maximized = true
	doc := testSettings(a, b)

	res, err := Apply(doc, Action{Type: ActionSetAllFullscreen})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message != "All widgets set to fullscreen." {
		t.Errorf("message = %q", res.Message)
	}
	for _, w := range res.Settings.Layout {
		if !w.Fullscreen || w.Maximized || w.Minimized {
			t.Errorf("widget %q flags = full=%v max=%v min=%v", w.ID, w.Fullscreen, w.Maximized, w.Minimized)
		}
	}
	if !doc.Layout[0].Minimized {
		t.Errorf("input document was mutated")
	}
}

func TestApplySetAllFullscreenIdempotent(t *testing.T) {
	doc := testSettings(testWidget("a"), testWidget("b"))

	once, err := Apply(doc, Action{Type: ActionSetAllFullscreen})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := Apply(once.Settings, Action{Type: ActionSetAllFullscreen})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(once.Settings.Layout, twice.Settings.Layout) {
		t.Errorf("applying twice changed the widget set")
	}
	if once.Message != twice.Message {
		t.Errorf("messages diverged: %q vs %q", once.Message, twice.Message)
	}
}

func TestApplySetAllFullscreenEmptyLayout(t *testing.T) {
	doc := testSettings()

	res, err := Apply(doc, Action{Type: ActionSetAllFullscreen})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Message != "There are no widgets to maximize." {
		t.Errorf("message = %q", res.Message)
	}
	if res.Changed {
		t.Errorf("empty layout must not count as a change")
	}
	if len(res.Settings.Layout) != 0 {
		t.Errorf("document changed: %+v", res.Settings.Layout)
	}
}

func TestApplyNoOp(t *testing.T) {
	doc := testSettings(testWidget("a"))

	res, err := Apply(doc, Action{Type: ActionNoOp, Reason: `Command "xyzzy" processed.`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Changed {
		t.Errorf("NoOp must not count as a change")
	}
	if res.Message != `Command "xyzzy" processed.` {
		t.Errorf("message = %q", res.Message)
	}
	if !reflect.DeepEqual(res.Settings.Layout, doc.Layout) || res.Settings.Theme != doc.Theme {
		t.Errorf("NoOp changed the document")
	}
}

func TestApplyIsDeterministic(t *testing.T) {
	doc := testSettings(testWidget("a"))
	action := Action{Type: ActionSetAllFullscreen}

	first, err1 := Apply(doc, action)
	second, err2 := Apply(doc, action)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if !reflect.DeepEqual(first.Settings.Layout, second.Settings.Layout) || first.Message != second.Message {
		t.Errorf("same (document, action) pair produced different results")
	}
}

func TestApplyUnknownAction(t *testing.T) {
	doc := testSettings()
	if _, err := Apply(doc, Action{Type: ActionType("teleport")}); err == nil {
		t.Fatal("expected error for unknown action type")
	}
}
