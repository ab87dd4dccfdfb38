// Package drag tracks the overlay position while the pointer drags it.
package drag

import "github.com/mobile-next/bubble/types"

// Session is the state of one drag, from pointer down to pointer up.
type Session struct {
	AnchorPosition types.Position
	AnchorPointer  types.Position
	Active         bool
}

// Controller converts pointer positions into window positions relative to
// the anchor captured on down. Positions are always recomputed from the
// anchor, never summed from deltas, so long drags do not drift.
type Controller struct {
	session Session
}

// NewController returns an idle controller.
func NewController() *Controller {
	return &Controller{}
}

// OnDown opens a drag anchored at the current window position. Calling it
// during an active drag re-anchors.
func (c *Controller) OnDown(pointer types.PointerEvent, current types.Position) {
	c.session = Session{
		AnchorPosition: current,
		AnchorPointer:  pointer.Point(),
		Active:         true,
	}
}

// OnMove returns the window position for pointer. ok is false when no drag
// is open; the input source can deliver a stray move after up or cancel.
func (c *Controller) OnMove(pointer types.PointerEvent) (position types.Position, ok bool) {
	if !c.session.Active {
		return types.Position{}, false
	}
	delta := pointer.Point().Sub(c.session.AnchorPointer)
	return c.session.AnchorPosition.Add(delta), true
}

// OnUp closes the drag. It is a no-op without an open drag.
func (c *Controller) OnUp() {
	c.session = Session{}
}

// Active reports whether a drag is open.
func (c *Controller) Active() bool {
	return c.session.Active
}

// Session returns a copy of the current drag state.
func (c *Controller) Session() Session {
	return c.session
}
