package grammar

import (
	"fmt"

	"github.com/dekarrin/lingot/internal/ling/lexicon"
)

// Link is a directed edge between two nodes, carrying a type, a locale, and
// a pass level. It is created by a Binding's Bind step; Level is left zero
// there and set by the reducer once the link is accepted into a pass
// (§4.5d), since the level is a property of reduction, not of binding.
type Link struct {
	Source      lexicon.Node
	Destination lexicon.Node
	Type        string
	Locale      string
	Level       int
}

// String renders l as "[level] source --type--> destination", the single
// fixed-shape line a caller building a debug dump composes many of before
// handing the whole block to rosed for wrapping (see Meaning.String).
func (l Link) String() string {
	return fmt.Sprintf("[%d] %s --%s--> %s", l.Level, l.Source, l.Type, l.Destination)
}
