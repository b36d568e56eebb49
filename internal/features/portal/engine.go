package portal

import (
	"errors"
	"fmt"
)

// ErrWidgetIDConflict is returned when an added widget reuses an id
// already present in the layout.
var ErrWidgetIDConflict = errors.New("widget id already exists in layout")

// ApplyResult carries the mutated document, the confirmation message and
// whether the document actually changed. Changed gates persistence and
// broadcast; the message is always returned to the caller.
type ApplyResult struct {
	Settings *PortalSettings
	Message  string
	Changed  bool
}

// Apply runs a resolved action against a settings document and returns the
// new document. It is a pure function: the input document is never
// mutated, and the same (document, action) pair always yields the same
// result.
func Apply(settings *PortalSettings, action Action) (ApplyResult, error) {
	switch action.Type {
	case ActionChangeTheme:
		next := settings.Clone()
		next.Theme = action.Theme
		return ApplyResult{
			Settings: next,
			Message:  fmt.Sprintf("Theme changed to %s.", action.Theme),
			Changed:  true,
		}, nil

	case ActionAddWidget:
		if action.Widget == nil {
			return ApplyResult{}, errors.New("add widget action carries no widget")
		}
		if settings.HasWidget(action.Widget.ID) {
			return ApplyResult{}, ErrWidgetIDConflict
		}
		next := settings.Clone()
		next.Layout = append(next.Layout, action.Widget.Clone())
		return ApplyResult{
			Settings: next,
			Message:  fmt.Sprintf("Added widget %q.", action.Widget.Title),
			Changed:  true,
		}, nil

	case ActionSetAllFullscreen:
		if len(settings.Layout) == 0 {
			return ApplyResult{
				Settings: settings.Clone(),
				Message:  "There are no widgets to maximize.",
				Changed:  false,
			}, nil
		}
		next := settings.Clone()
		for i := range next.Layout {
			next.Layout[i].Fullscreen = true
			next.Layout[i].Maximized = false
			next.Layout[i].Minimized = false
		}
		return ApplyResult{
			Settings: next,
			Message:  "All widgets set to fullscreen.",
			Changed:  true,
		}, nil

	case ActionNoOp:
		message := action.Reason
		if message == "" {
			message = "Command processed."
		}
		return ApplyResult{
			Settings: settings.Clone(),
			Message:  message,
			Changed:  false,
		}, nil

	default:
		return ApplyResult{}, fmt.Errorf("unknown action type %q", action.Type)
	}
}
