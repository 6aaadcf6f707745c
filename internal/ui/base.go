// Package ui holds pieces shared by the terminal views.
package ui

// Base tracks the size a view was given. Embed it in panel models.
type Base struct {
	width, height int
}

// SetSize records the space available to the view.
func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int {
	return b.width
}

func (b Base) Height() int {
	return b.height
}
