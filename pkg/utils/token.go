package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// NewWidgetID returns a fresh widget identifier. IDs are never reused,
// so a random token is enough to keep them unique within a layout.
func NewWidgetID() string {
	return fmt.Sprintf("widget-%s", uuid.NewString())
}
