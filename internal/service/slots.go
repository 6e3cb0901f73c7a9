package service

import (
	"strings"

	"github.com/jafarshop/catalogapi/internal/shopify"
)

// optionSlots maps the size/color taxonomy dimensions to the 1-based option
// slot carrying them on a remote product's variants. 0 means the dimension
// was not declared.
type optionSlots struct {
	Size  int
	Color int
}

// resolveOptionSlots scans a remote product's option declarations once; the
// match on option names is case-insensitive.
func resolveOptionSlots(p shopify.Product) optionSlots {
	var slots optionSlots
	for _, option := range p.Options {
		switch strings.ToLower(option.Name) {
		case "size":
			slots.Size = option.Position
		case "color":
			slots.Color = option.Position
		}
	}
	return slots
}

// complete reports whether both dimensions were declared. Products missing
// either one are created with zero variants.
func (s optionSlots) complete() bool {
	return s.Size > 0 && s.Color > 0
}
