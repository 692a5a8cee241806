package responsive

import "sync"

// MenuState is the navigation shell state.
type MenuState struct {
	Open     bool `json:"open"`
	Expanded bool `json:"expanded"`
	Pinned   bool `json:"pinned"`
}

// Menu owns the shell's menu state. Desktop starts open and collapsed.
// On desktop Toggle pins (and expands) or unpins (and collapses); on mobile
// it only opens or closes the drawer.
type Menu struct {
	mu     sync.Mutex
	state  MenuState
	mobile bool
}

// NewMenu returns a menu in the desktop default state.
func NewMenu() *Menu {
	return &Menu{state: MenuState{Open: true}}
}

// State returns a snapshot.
func (m *Menu) State() MenuState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Mobile reports the breakpoint class the menu was last evaluated for.
func (m *Menu) Mobile() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mobile
}

// SetMobile re-evaluates open, expanded and pinned together when the class
// changes. Same-class calls are no-ops so a pinned desktop menu survives
// desktop resizes.
func (m *Menu) SetMobile(mobile bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mobile == mobile {
		return
	}
	m.mobile = mobile
	m.state = MenuState{Open: !mobile}
}

// Toggle flips the drawer on mobile and the pin on desktop.
func (m *Menu) Toggle() MenuState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mobile {
		m.state.Open = !m.state.Open
		return m.state
	}
	m.state.Pinned = !m.state.Pinned
	m.state.Expanded = m.state.Pinned
	m.state.Open = true
	return m.state
}

// Navigate closes the drawer on mobile.
func (m *Menu) Navigate() MenuState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mobile {
		m.state.Open = false
	}
	return m.state
}
