package lexicon

import "github.com/dekarrin/lingot/internal/ling/lex"

// PseudoNotifier is informed whenever Resolve builds a pseudo-node for a
// symbol the Store doesn't recognize (§4.2 step 4). A handler may
// synchronously enrich the Store (via its own Write call) before Resolve
// continues to the next token; Resolve does not re-check the Store for the
// token just handled.
//
// This is deliberately a small, local interface rather than a dependency on
// the event package: event.Sink satisfies it structurally.
type PseudoNotifier interface {
	OnPseudoNode(n Node)
}

type noopNotifier struct{}

func (noopNotifier) OnPseudoNode(Node) {}

// Resolve turns an ordered token stream into an ordered node stream of the
// same length (§4.2). notifier may be nil, in which case pseudo-node events
// are simply not observed.
func Resolve(locale string, tokens []lex.Token, store Store, notifier PseudoNotifier) ([]Node, error) {
	if notifier == nil {
		notifier = noopNotifier{}
	}

	nodes := make([]Node, len(tokens))
	for i, tok := range tokens {
		n, err := resolveOne(locale, tok.Core, store, notifier)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

func resolveOne(locale, symbol string, store Store, notifier PseudoNotifier) (Node, error) {
	id := HashID(symbol)

	exists, err := store.Exists(locale, id)
	if err != nil {
		return Node{}, err
	}

	var data LexicalData
	if exists {
		data, _, err = store.Read(locale, id)
		if err != nil {
			return Node{}, err
		}
	} else {
		data, err = store.Pseudo(locale, symbol)
		if err != nil {
			return Node{}, err
		}
		n := New(data).WithOriginalToken(symbol)
		notifier.OnPseudoNode(n)
		return n, nil
	}

	return New(data).WithOriginalToken(symbol), nil
}
