package renderer

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// RenderIDPrefix is the type prefix of render identifiers
const RenderIDPrefix = "render"

// NewRenderID returns a new sortable render identifier such as render_01h2xcejqtf2nbrexx3vqjhp41
func NewRenderID() string {
	return typeid.MustGenerate(RenderIDPrefix).String()
}

// ValidateRenderID checks that id is a well-formed render identifier
func ValidateRenderID(id string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid render id %q: %w", id, err)
	}
	if parsed.Prefix() != RenderIDPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", RenderIDPrefix, parsed.Prefix(), id)
	}
	return nil
}
