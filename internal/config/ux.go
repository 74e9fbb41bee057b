package config

// UIConfig holds user interface configuration.
type UIConfig struct {
	// Theme is auto, light or dark
	Theme string `json:"theme" yaml:"theme"`

	// AltScreen runs the TUI in the alternate screen buffer
	AltScreen bool `json:"alt_screen" yaml:"alt_screen"`

	// Mouse enables mouse events (needed to close the overlay by clicking outside)
	Mouse bool `json:"mouse" yaml:"mouse"`

	// OverlayWidth is the maximum overlay width in cells (0 = 2/3 of the terminal)
	OverlayWidth int `json:"overlay_width,omitempty" yaml:"overlay_width,omitempty"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:        "auto",
		AltScreen:    true,
		Mouse:        true,
		OverlayWidth: 0,
	}
}
