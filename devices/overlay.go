package devices

import (
	"errors"
	"sync"

	"github.com/mobile-next/bubble/bubble"
	"github.com/mobile-next/bubble/types"
)

var ErrWindowDestroyed = errors.New("overlay window destroyed")

// VirtualWindowManager creates in-memory overlays. It stands in for a real
// window manager when bubbles are replayed or hosted by the server.
type VirtualWindowManager struct {
	mu      sync.Mutex
	windows []*VirtualWindow
}

func NewVirtualWindowManager() *VirtualWindowManager {
	return &VirtualWindowManager{}
}

func (m *VirtualWindowManager) CreateOverlay(pos types.Position, size types.Size) (bubble.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := &VirtualWindow{position: pos, size: size, trail: []types.Position{pos}}
	m.windows = append(m.windows, w)
	return w, nil
}

// Windows returns every overlay created so far.
func (m *VirtualWindowManager) Windows() []*VirtualWindow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*VirtualWindow(nil), m.windows...)
}

// VirtualWindow records where it has been moved.
type VirtualWindow struct {
	mu        sync.Mutex
	position  types.Position
	size      types.Size
	trail     []types.Position
	destroyed bool
}

func (w *VirtualWindow) Move(pos types.Position) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return ErrWindowDestroyed
	}
	w.position = pos
	w.trail = append(w.trail, pos)
	return nil
}

func (w *VirtualWindow) Destroy() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.destroyed = true
	return nil
}

func (w *VirtualWindow) Position() types.Position {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.position
}

func (w *VirtualWindow) Size() types.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Trail returns the creation position followed by every move.
func (w *VirtualWindow) Trail() []types.Position {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]types.Position(nil), w.trail...)
}

func (w *VirtualWindow) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}
