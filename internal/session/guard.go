package session

import "sync"

// Guard is the scoped anti-cheat resource: acquired when a session
// enters InProgress with anti-cheat enabled, released on every exit
// path. While held, clipboard and selection events are suppressed with
// a user-visible notice; outside a session it is inert, so suppression
// never leaks into unrelated views.
type Guard struct {
	mu     sync.Mutex
	armed  bool // anti-cheat configured for this session
	active bool // session currently in progress
}

func NewGuard(armed bool) *Guard { return &Guard{armed: armed} }

func (g *Guard) Acquire() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = true
}

// Release is idempotent.
func (g *Guard) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.active = false
}

func (g *Guard) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.armed && g.active
}

type EventResult struct {
	Suppressed bool   `json:"suppressed"`
	Notice     string `json:"notice,omitempty"`
}

var guardedEvents = map[string]string{
	"copy":        "Copying is disabled",
	"cut":         "Cutting is disabled",
	"paste":       "Pasting is disabled",
	"contextmenu": "",
	"selectstart": "",
}

// Handle suppresses a guarded event while the guard is held. Clipboard
// events carry a notice; context-menu and selection are silent no-ops.
func (g *Guard) Handle(kind string) EventResult {
	notice, guarded := guardedEvents[kind]
	if !guarded || !g.Active() {
		return EventResult{}
	}
	res := EventResult{Suppressed: true}
	if notice != "" {
		res.Notice = notice + ". Anti-cheat mode is active."
	}
	return res
}
