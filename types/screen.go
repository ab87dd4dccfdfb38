package types

// Position is the top-left anchor of the overlay window in screen coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the component-wise sum of p and d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the component-wise difference p - d.
func (p Position) Sub(d Position) Position {
	return Position{X: p.X - d.X, Y: p.Y - d.Y}
}

// Size represents width and height dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ScreenBounds is the size of the screen the overlay is drawn on.
type ScreenBounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (b ScreenBounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// LeftEdge is the snap target for a left fling. Window x is measured from
// the screen center, so the left edge sits at -width/2.
func (b ScreenBounds) LeftEdge(bubbleRadius int) int {
	return -b.Width/2 + bubbleRadius
}

// RightEdge is the snap target for a right fling.
func (b ScreenBounds) RightEdge(bubbleRadius int) int {
	return b.Width/2 - bubbleRadius
}
