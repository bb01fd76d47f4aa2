package state

import (
	"fmt"

	"github.com/atomicstack/spiris-tui/internal/entity"
)

// ScreenKind tags the Screen variant.
type ScreenKind int

const (
	ScreenHome ScreenKind = iota
	ScreenAuth
	ScreenList
	ScreenCreate
	ScreenEdit
	ScreenDetail
	ScreenHelp
)

// Screen identifies what is on display. Detail and edit screens carry the
// record identifier rather than a list index so they survive reloads.
type Screen struct {
	Kind   ScreenKind
	Entity entity.Kind
	ID     string
}

func Home() Screen                   { return Screen{Kind: ScreenHome} }
func Auth() Screen                   { return Screen{Kind: ScreenAuth} }
func Help() Screen                   { return Screen{Kind: ScreenHelp} }
func List(kind entity.Kind) Screen   { return Screen{Kind: ScreenList, Entity: kind} }
func Create(kind entity.Kind) Screen { return Screen{Kind: ScreenCreate, Entity: kind} }
func Edit(kind entity.Kind, id string) Screen {
	return Screen{Kind: ScreenEdit, Entity: kind, ID: id}
}
func Detail(kind entity.Kind, id string) Screen {
	return Screen{Kind: ScreenDetail, Entity: kind, ID: id}
}

// IsList reports whether s is the list screen for kind.
func (s Screen) IsList(kind entity.Kind) bool {
	return s.Kind == ScreenList && s.Entity == kind
}

// HasEntity reports whether Entity is meaningful for s.
func (s Screen) HasEntity() bool {
	switch s.Kind {
	case ScreenList, ScreenCreate, ScreenEdit, ScreenDetail:
		return true
	}
	return false
}

func (s Screen) String() string {
	switch s.Kind {
	case ScreenHome:
		return "home"
	case ScreenAuth:
		return "auth"
	case ScreenHelp:
		return "help"
	case ScreenList:
		return "list:" + s.Entity.String()
	case ScreenCreate:
		return "create:" + s.Entity.String()
	case ScreenEdit:
		return fmt.Sprintf("edit:%s:%s", s.Entity, s.ID)
	case ScreenDetail:
		return fmt.Sprintf("detail:%s:%s", s.Entity, s.ID)
	}
	return "unknown"
}

var ring = []Screen{
	Home(),
	List(entity.KindCustomer),
	List(entity.KindInvoice),
	List(entity.KindArticle),
	Help(),
}

func ringIndex(s Screen) int {
	for i, r := range ring {
		if r.Kind == s.Kind && (!r.HasEntity() || r.Entity == s.Entity) {
			return i
		}
	}
	return -1
}
