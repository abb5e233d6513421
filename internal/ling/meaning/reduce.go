package meaning

import (
	"strings"

	"github.com/dekarrin/lingot/internal/ling/grammar"
	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/dekarrin/lingot/internal/ling/lingerrors"
)

// Notifier observes binding outcomes during reduction plus overall
// completion (§6).
type Notifier interface {
	grammar.BindNotifier
	OnReductionFinished()
}

type noopNotifier struct{}

func (noopNotifier) OnBindingSucceeded(*grammar.Binding, lexicon.Node, lexicon.Node) {}
func (noopNotifier) OnBindingFailed(*grammar.Binding, lexicon.Node, lexicon.Node)    {}
func (noopNotifier) OnReductionFinished()                                           {}

// DefaultMaxLevel is the MAX_LEVEL safety cap from §4.5: reduction beyond
// this many passes is a reducer bug, not a valid outcome.
const DefaultMaxLevel = 5

// Reduce runs the bounded-depth multi-pass reduction (§4.5) over one
// expansion path. It returns nil if the path reduces to zero links
// (§4.5 Termination, Open Question #2: no Meaning is returned, not an
// empty one).
//
// maxLevel <= 0 selects DefaultMaxLevel. Exceeding maxLevel is an internal
// bug condition: Reduce panics with a *lingerrors.Error of kind
// KindInternal rather than silently truncating the reduction.
func Reduce(path []lexicon.FlatNode, reg *grammar.Registry, maxLevel int, notifier Notifier) *Meaning {
	if maxLevel <= 0 {
		maxLevel = DefaultMaxLevel
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}

	nodes := make([]lexicon.Node, len(path))
	for i, f := range path {
		nodes[i] = f.Node
	}

	var links []grammar.Link
	var hideOther bool
	var hideFilter []string
	level := 1

	for {
		if level > maxLevel {
			panic(lingerrors.Internal("meaning reduction exceeded max depth %d", maxLevel))
		}

		passLinks, nextNodes, nextHideOther, nextHideFilter := onePass(nodes, level, hideOther, hideFilter, reg, notifier)
		if len(passLinks) == 0 {
			// A pass with no binds and nothing accumulated yet means the
			// whole path never reduces (§4.5 Termination, Open Question
			// #2). A pass with no further binds after earlier passes did
			// produce links just means reduction is done: return what was
			// built instead of discarding it.
			if len(links) == 0 {
				return nil
			}
			notifier.OnReductionFinished()
			return &Meaning{Links: links}
		}

		links = append(links, passLinks...)
		hideOther = nextHideOther
		hideFilter = nextHideFilter

		// Fewer than two survivors means no further pass can bind anything
		// (onePass no-ops below L==2), so stop here rather than spending a
		// pass to discover that.
		if len(nextNodes) < 2 {
			notifier.OnReductionFinished()
			return &Meaning{Links: links}
		}

		nodes = nextNodes
		level++
	}
}

// onePass runs a single reduction pass over nodes (§4.5 "One pass").
func onePass(
	nodes []lexicon.Node,
	level int,
	hideOtherIn bool,
	hideFilterIn []string,
	reg *grammar.Registry,
	notifier Notifier,
) (links []grammar.Link, nextNodes []lexicon.Node, hideOtherOut bool, hideFilterOut []string) {
	L := len(nodes)
	if L < 2 {
		return nil, nil, hideOtherIn, hideFilterIn
	}

	hideOther := hideOtherIn
	hideFilter := hideFilterIn
	hideThis := false
	cursor := 0

	for cursor <= L-2 {
		src := nodes[cursor]
		dst := nodes[cursor+1]

		if len(hideFilter) > 0 {
			extra := src.StringVerbose(lexicon.Extra)
			matched := false
			for _, f := range hideFilter {
				if f != "" && strings.Contains(extra, f) {
					matched = true
					break
				}
			}
			if !matched {
				hideFilter = nil
				hideThis = false
			} else {
				hideThis = true
			}
		}

		binding, found := grammar.Obtain(reg, src, dst)
		if !found {
			cursor++
			continue
		}

		link, ok := binding.BindNotify(src, dst, notifier)
		if !ok {
			cursor++
			continue
		}
		link.Level = level
		links = append(links, link)

		hide := binding.Attrs.Get("hide", "no")
		hideNext := binding.Attrs.Get("hideNext", "no")
		skipWord := binding.Attrs.Get("skipWord", "yes")
		hideFilterAttr := binding.Attrs.List("hideFilter")

		if !hideThis && !hideOther && hide == "no" {
			nextNodes = append(nextNodes, link.Source)
		}

		hideOther = hideNext == "yes"

		if len(hideFilterAttr) > 0 {
			hideFilter = hideFilterAttr
		}

		if skipWord == "yes" {
			cursor += 2
		} else {
			cursor++
		}
	}

	// §4.5 step 2: the cursor left exactly one node (the last) unconsumed;
	// if it's the sole survivor so far, carry it over to the next pass.
	if cursor == L-1 && len(nextNodes) == 1 {
		nextNodes = append(nextNodes, nodes[L-1])
	}

	return links, nextNodes, hideOther, hideFilter
}
