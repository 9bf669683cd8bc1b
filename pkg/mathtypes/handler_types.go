package mathtypes

// HelpInfo represents structured help information for an input route.
// It can be rendered in both plain text and styled formats.
type HelpInfo struct {
	Route       string        `json:"route"`              // Route name
	Description string        `json:"description"`        // Brief description of what the route does
	Usage       string        `json:"usage"`              // Usage syntax
	Examples    []HelpExample `json:"examples,omitempty"` // Usage examples
	Notes       []string      `json:"notes,omitempty"`    // Additional notes or caveats
}

// HelpExample represents a usage example with explanation.
type HelpExample struct {
	Input       string `json:"input"`       // Example input line
	Description string `json:"description"` // What this example demonstrates
}
