package domain

// Palette cycles accent colors for new tasks so sibling tasks stay visually
// distinct without user input.
var Palette = []string{
	"#f38ba8",
	"#fab387",
	"#f9e2af",
	"#a6e3a1",
	"#94e2d5",
	"#89b4fa",
	"#b4befe",
	"#cba6f7",
}

// ColorFor picks the palette entry for the nth created task.
func ColorFor(n int) string {
	if n < 0 {
		n = 0
	}
	return Palette[n%len(Palette)]
}
