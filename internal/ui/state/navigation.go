package state

import "github.com/atomicstack/spiris-tui/internal/entity"

// Mode selects how keystrokes are interpreted.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
)

func (m Mode) String() string {
	if m == ModeEditing {
		return "editing"
	}
	return "normal"
}

// MenuItem is one entry of the home menu.
type MenuItem struct {
	Label  string
	Target Screen
}

// HomeMenu is the fixed home screen menu.
var HomeMenu = []MenuItem{
	{Label: "View Customers", Target: List(entity.KindCustomer)},
	{Label: "View Invoices", Target: List(entity.KindInvoice)},
	{Label: "View Articles", Target: List(entity.KindArticle)},
	{Label: "Create Customer", Target: Create(entity.KindCustomer)},
	{Label: "Create Invoice", Target: Create(entity.KindInvoice)},
	{Label: "Create Article", Target: Create(entity.KindArticle)},
	{Label: "Help", Target: Help()},
}

// Navigation tracks the current screen and a single remembered prior screen.
// Back only ever returns one hop; a second Back lands on Home.
type Navigation struct {
	Current   Screen
	ReturnTo  *Screen
	Mode      Mode
	MenuIndex int
}

// NewNavigation starts on Home when authenticated and on Auth otherwise.
func NewNavigation(authenticated bool) *Navigation {
	n := &Navigation{Current: Auth()}
	if authenticated {
		n.Current = Home()
	}
	return n
}

// Push moves to screen, remembering the current one as the return target.
func (n *Navigation) Push(to Screen) {
	prev := n.Current
	n.ReturnTo = &prev
	n.Current = to
}

// Go moves to screen and forgets the return target.
func (n *Navigation) Go(to Screen) {
	n.Current = to
	n.ReturnTo = nil
}

// Back pops the return target, falling back to Home.
func (n *Navigation) Back() Screen {
	if n.ReturnTo != nil {
		n.Current = *n.ReturnTo
		n.ReturnTo = nil
		return n.Current
	}
	n.Current = Home()
	return n.Current
}

// Cycle steps through the primary screens. It is a no-op off the ring, while
// editing or while unauthenticated, and reports whether it moved.
func (n *Navigation) Cycle(delta int, authenticated bool) bool {
	if !authenticated || n.Mode == ModeEditing {
		return false
	}
	idx := ringIndex(n.Current)
	if idx < 0 {
		return false
	}
	size := len(ring)
	idx = ((idx+delta)%size + size) % size
	n.Go(ring[idx])
	return true
}

// MoveMenu shifts the home menu index, clamped to the menu bounds.
func (n *Navigation) MoveMenu(delta int) bool {
	old := n.MenuIndex
	n.MenuIndex += delta
	if n.MenuIndex < 0 {
		n.MenuIndex = 0
	}
	if n.MenuIndex >= len(HomeMenu) {
		n.MenuIndex = len(HomeMenu) - 1
	}
	return n.MenuIndex != old
}

// MenuTarget returns the screen selected on the home menu.
func (n *Navigation) MenuTarget() MenuItem {
	return HomeMenu[n.MenuIndex]
}

// QuitAllowed is false exactly while a form is being edited.
func (n *Navigation) QuitAllowed() bool {
	return n.Mode == ModeNormal
}
