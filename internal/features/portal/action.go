package portal

import (
	"fmt"
	"strings"

	"github.com/random-lottery/AIPortal/pkg/utils"
)

type ActionType string

const (
	ActionChangeTheme      ActionType = "changeTheme"
	ActionAddWidget        ActionType = "addWidget"
	ActionSetAllFullscreen ActionType = "setAllFullscreen"
	ActionNoOp             ActionType = "noop"
)

// Action is the closed set of intents the mutation engine accepts. Any
// resolver (rule-based or an external AI one) must translate its output
// into this shape before it reaches Apply.
type Action struct {
	Type   ActionType
	Theme  Theme   // ActionChangeTheme
	Widget *Widget // ActionAddWidget
	Reason string  // ActionNoOp confirmation message
}

// ResolveCommand classifies a free-text command against a fixed,
// priority-ordered rule table. First match wins; anything unmatched
// becomes a NoOp, never an error.
func ResolveCommand(command string) Action {
	lower := strings.ToLower(command)

	switch {
	case strings.Contains(lower, "change theme to dark") || strings.Contains(lower, "dark mode"):
		return Action{Type: ActionChangeTheme, Theme: ThemeDark}
	case strings.Contains(lower, "change theme to light") || strings.Contains(lower, "light mode"):
		return Action{Type: ActionChangeTheme, Theme: ThemeLight}
	case strings.Contains(lower, "add welcome widget"):
		w := NewWelcomeWidget()
		return Action{Type: ActionAddWidget, Widget: &w}
	case strings.Contains(lower, "make all widgets full screen"):
		return Action{Type: ActionSetAllFullscreen}
	default:
		return Action{Type: ActionNoOp, Reason: fmt.Sprintf("Command %q processed.", command)}
	}
}

// NewWelcomeWidget builds the default widget synthesized for
// "add welcome widget" commands. The id is generated fresh each time.
func NewWelcomeWidget() Widget {
	return Widget{
		ID:    utils.NewWidgetID(),
		Type:  WidgetTypeText,
		Title: "AI Welcome",
		Position: Position{
			X:      50,
			Y:      50,
			Width:  320,
			Height: 150,
			ZIndex: 10,
		},
		Config: map[string]interface{}{
			"content": "Welcome by AI Agent!",
		},
	}
}

// StructuredAction is the shape a richer (LLM-backed) resolver emits.
type StructuredAction struct {
	Action  string                 `json:"action"`
	Args    map[string]interface{} `json:"args"`
	Message string                 `json:"message"`
}

// Structured action types understood by ResolveStructured.
const (
	StructuredChangeTheme     = "CHANGE_THEME"
	StructuredAddWidget       = "ADD_WIDGET"
	StructuredMaximizeWidgets = "MAXIMIZE_ALL_WIDGETS"
	StructuredNoAction        = "NO_ACTION"
)

// ResolveStructured translates a structured action into the closed Action
// set. Malformed input degrades to a NoOp with an explanatory reason
// rather than an error.
func ResolveStructured(raw StructuredAction) Action {
	switch raw.Action {
	case StructuredChangeTheme:
		theme := Theme(stringArg(raw.Args, "theme"))
		if !ValidTheme(theme) {
			return Action{Type: ActionNoOp, Reason: "Requested theme is not supported."}
		}
		return Action{Type: ActionChangeTheme, Theme: theme}

	case StructuredAddWidget:
		title := stringArg(raw.Args, "title")
		if title == "" {
			return Action{Type: ActionNoOp, Reason: "Widget title is required."}
		}
		wType := WidgetType(stringArg(raw.Args, "type"))
		if wType == "" {
			wType = WidgetTypeText
		}
		if !ValidWidgetType(wType) {
			return Action{Type: ActionNoOp, Reason: fmt.Sprintf("Widget type %q is not supported.", wType)}
		}
		w := Widget{
			ID:    utils.NewWidgetID(),
			Type:  wType,
			Title: title,
			Position: Position{
				X:      50,
				Y:      50,
				Width:  320,
				Height: 150,
				ZIndex: 10,
			},
			Config: map[string]interface{}{},
		}
		if content := stringArg(raw.Args, "content"); content != "" {
			w.Config["content"] = content
		}
		return Action{Type: ActionAddWidget, Widget: &w}

	case StructuredMaximizeWidgets:
		return Action{Type: ActionSetAllFullscreen}

	case StructuredNoAction:
		reason := raw.Message
		if reason == "" {
			reason = "Command processed."
		}
		return Action{Type: ActionNoOp, Reason: reason}

	default:
		return Action{Type: ActionNoOp, Reason: fmt.Sprintf("Unknown action %q.", raw.Action)}
	}
}

func stringArg(args map[string]interface{}, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
