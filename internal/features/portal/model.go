package portal

import "time"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ValidTheme reports whether t is one of the supported themes.
func ValidTheme(t Theme) bool {
	return t == ThemeLight || t == ThemeDark
}

type WidgetType string

const (
	WidgetTypeText    WidgetType = "text"
	WidgetTypeChart   WidgetType = "chart"
	WidgetTypeWeather WidgetType = "weather"
	WidgetTypeCustom  WidgetType = "custom"
)

// ValidWidgetType reports whether wt is one of the supported widget kinds.
func ValidWidgetType(wt WidgetType) bool {
	switch wt {
	case WidgetTypeText, WidgetTypeChart, WidgetTypeWeather, WidgetTypeCustom:
		return true
	}
	return false
}

// Position is a widget's rectangle plus stacking order. Higher zIndex
// draws on top.
type Position struct {
	X      float64 `bson:"x" json:"x"`
	Y      float64 `bson:"y" json:"y"`
	Width  float64 `bson:"width" json:"width"`
	Height float64 `bson:"height" json:"height"`
	ZIndex int     `bson:"zIndex" json:"zIndex"`
}

// Widget is one positioned dashboard item. Config keys are interpreted
// per widget type (e.g. "content" for text, "dataUrl" for chart).
type Widget struct {
	ID         string                 `bson:"id" json:"id"`
	Type       WidgetType             `bson:"type" json:"type"`
	Title      string                 `bson:"title" json:"title"`
	Position   Position               `bson:"position" json:"position"`
	Minimized  bool                   `bson:"minimized" json:"minimized"`
	Maximized  bool                   `bson:"maximized" json:"maximized"`
	Fullscreen bool                   `bson:"fullscreen" json:"fullscreen"`
	Config     map[string]interface{} `bson:"config" json:"config"`
}

// PortalSettings is the per-user layout document. Layout order is
// insertion order; display order is derived from zIndex.
type PortalSettings struct {
	UserID    string    `bson:"user_id" json:"userId"`
	Layout    []Widget  `bson:"layout" json:"layout"`
	Theme     Theme     `bson:"theme" json:"theme"`
	Language  string    `bson:"language" json:"language"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DefaultSettings returns the document a user starts with.
func DefaultSettings(userID string) *PortalSettings {
	now := time.Now()
	return &PortalSettings{
		UserID:    userID,
		Layout:    []Widget{},
		Theme:     ThemeLight,
		Language:  "en",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy so the mutation engine can stay pure.
func (s *PortalSettings) Clone() *PortalSettings {
	out := *s
	out.Layout = make([]Widget, len(s.Layout))
	for i, w := range s.Layout {
		out.Layout[i] = w.Clone()
	}
	return &out
}

// Clone returns a deep copy of the widget including its config map.
func (w Widget) Clone() Widget {
	out := w
	if w.Config != nil {
		out.Config = make(map[string]interface{}, len(w.Config))
		for k, v := range w.Config {
			out.Config[k] = v
		}
	}
	return out
}

// HasWidget reports whether a widget with the given id exists in the layout.
func (s *PortalSettings) HasWidget(id string) bool {
	for _, w := range s.Layout {
		if w.ID == id {
			return true
		}
	}
	return false
}
