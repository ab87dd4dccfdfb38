package commands

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/bubble/bubble"
	"github.com/mobile-next/bubble/devices"
	"github.com/mobile-next/bubble/types"
	"github.com/mobile-next/bubble/utils"
)

// DefaultMaxSessions bounds how many bubbles the server keeps alive. The
// least recently used session is closed when the limit is reached.
const DefaultMaxSessions = 16

// ErrSessionNotFound is returned for unknown or already closed session IDs.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore holds live bubble sessions by ID.
type SessionStore struct {
	cache *lru.Cache[string, *bubble.Session]
}

// NewSessionStore creates a store that closes sessions it evicts.
func NewSessionStore(size int) (*SessionStore, error) {
	cache, err := lru.NewWithEvict(size, func(id string, session *bubble.Session) {
		select {
		case <-session.Done():
			// already closing, this is its own close hook
			return
		default:
		}
		utils.Verbose("closing evicted session %s", id)
		if err := session.Close(); err != nil {
			utils.Verbose("Error closing session %s: %v", id, err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}
	return &SessionStore{cache: cache}, nil
}

// Add stores the session under a new ID. The session leaves the store when
// it closes.
func (s *SessionStore) Add(session *bubble.Session) string {
	id := uuid.NewString()
	s.cache.Add(id, session)
	session.OnClose("session-store", func() error {
		s.cache.Remove(id)
		return nil
	})
	return id
}

func (s *SessionStore) Get(id string) (*bubble.Session, error) {
	session, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// Remove closes and forgets the session.
func (s *SessionStore) Remove(id string) error {
	session, ok := s.cache.Peek(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session.Close()
}

func (s *SessionStore) Len() int {
	return s.cache.Len()
}

// CloseAll closes every stored session.
func (s *SessionStore) CloseAll() {
	for _, id := range s.cache.Keys() {
		_ = s.Remove(id)
	}
}

var (
	sessions       = mustSessionStore(DefaultMaxSessions)
	sessionOptions = bubble.DefaultOptions()
)

func mustSessionStore(size int) *SessionStore {
	store, err := NewSessionStore(size)
	if err != nil {
		panic(err)
	}
	return store
}

// Sessions returns the store used by the bubble commands.
func Sessions() *SessionStore {
	return sessions
}

// SetSessionOptions sets the options new sessions start from, usually
// loaded from the config file.
func SetSessionOptions(opts bubble.Options) {
	sessionOptions = opts
}

func defaultRadius() int {
	return sessionOptions.BubbleRadius
}

// SessionHook is called with every session started by BubbleStartCommand
// before its ID is returned.
type SessionHook func(id string, session *bubble.Session)

// BubbleStartRequest represents the parameters for starting a bubble session.
// With a device the screen size and actions come from adb; without one a
// screen size must be given and actions are only logged.
type BubbleStartRequest struct {
	DeviceID string `json:"deviceId,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	// Package is brought to the front on tap.
	Package      string          `json:"package,omitempty"`
	RunMinimized bool            `json:"runMinimized,omitempty"`
	Position     *types.Position `json:"position,omitempty"`
}

type BubbleStartResponse struct {
	SessionID string             `json:"sessionId"`
	Bounds    types.ScreenBounds `json:"bounds"`
	State     bubble.State       `json:"state"`
}

type BubblePointerRequest struct {
	SessionID string               `json:"sessionId"`
	Events    []types.PointerEvent `json:"events"`
}

type BubbleSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// BubbleStartCommand shows a new bubble on a virtual overlay.
func BubbleStartCommand(req BubbleStartRequest, hooks ...SessionHook) *CommandResponse {
	deps := bubble.Deps{Windows: devices.NewVirtualWindowManager()}

	if req.DeviceID != "" {
		device, err := FindDeviceOrAutoSelect(req.DeviceID)
		if err != nil {
			return NewErrorResponse(err)
		}

		screen, err := devices.NewScreenBoundsProvider(device)
		if err != nil {
			return NewErrorResponse(fmt.Errorf("%w: %v", bubble.ErrNoScreenBounds, err))
		}
		deps.Screen = screen
		deps.Actions = devices.AndroidActions{Device: device, Package: req.Package}
	} else {
		deps.Screen = bubble.StaticScreen{Width: req.Width, Height: req.Height}
		deps.Actions = loggingActions{}
	}

	opts := sessionOptions
	if req.RunMinimized {
		opts.RunMinimized = true
	}
	if req.Position != nil {
		pos := *req.Position
		opts.InitialPosition = &pos
	}

	session, err := bubble.NewSession(deps, opts)
	if err != nil {
		return NewErrorResponse(err)
	}

	id := sessions.Add(session)
	if registry := GetRegistry(); registry != nil {
		registry.Register(id, session)
	}
	for _, hook := range hooks {
		hook(id, session)
	}

	utils.Verbose("started bubble session %s", id)
	return NewSuccessResponse(BubbleStartResponse{
		SessionID: id,
		Bounds:    session.Bounds(),
		State:     session.State(),
	})
}

// BubblePointerCommand feeds pointer events to a session in order.
func BubblePointerCommand(req BubblePointerRequest) *CommandResponse {
	session, err := sessions.Get(req.SessionID)
	if err != nil {
		return NewErrorResponse(err)
	}

	for i, e := range req.Events {
		if err := session.HandleEvent(e); err != nil {
			return NewErrorResponse(fmt.Errorf("event %d (%s): %w", i, e, err))
		}
	}

	return NewSuccessResponse(session.State())
}

// BubbleStateCommand reports a session's state.
func BubbleStateCommand(req BubbleSessionRequest) *CommandResponse {
	session, err := sessions.Get(req.SessionID)
	if err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(session.State())
}

// BubbleStopCommand closes a session.
func BubbleStopCommand(req BubbleSessionRequest) *CommandResponse {
	if err := sessions.Remove(req.SessionID); err != nil {
		return NewErrorResponse(err)
	}

	return NewSuccessResponse(map[string]interface{}{
		"sessionId": req.SessionID,
		"closed":    true,
	})
}

// loggingActions stands in for a host application when no device is bound.
type loggingActions struct{}

func (loggingActions) BringToFront() error {
	utils.Info("bubble: bring to front")
	return nil
}

func (loggingActions) GoHome() error {
	utils.Info("bubble: go home")
	return nil
}

func (loggingActions) Terminate() error {
	utils.Info("bubble: terminate")
	return nil
}
