package api

import (
	"net/http"

	"github.com/dekarrin/lingot/internal/ling/lexicon"
	"github.com/dekarrin/lingot/server/result"
	"github.com/dekarrin/lingot/server/serr"
)

// flagModel is the wire form of one lexicon.Flag.
type flagModel struct {
	ConceptID string `json:"conceptId"`
	TypeCode  string `json:"typeCode"`
}

// lexicalDataModel is the wire form of one lexicon.LexicalData.
type lexicalDataModel struct {
	ID     string      `json:"id"`
	Locale string      `json:"locale"`
	Symbol string      `json:"symbol"`
	Flags  []flagModel `json:"flags"`
}

func toLexicalDataModel(data lexicon.LexicalData) lexicalDataModel {
	m := lexicalDataModel{ID: data.ID, Locale: data.Locale, Symbol: data.Symbol}
	for _, f := range data.Flags.All() {
		m.Flags = append(m.Flags, flagModel{ConceptID: f.ConceptID, TypeCode: f.TypeCode})
	}
	return m
}

// HTTPGetLexicalEntry returns a HandlerFunc that reads one lexicon entry by
// (locale, id). It requires no authentication.
func (api API) HTTPGetLexicalEntry() http.HandlerFunc {
	return Endpoint(api.epGetLexicalEntry)
}

func (api API) epGetLexicalEntry(req *http.Request) result.Result {
	locale := urlParam(req, "locale")
	id := urlParam(req, "id")
	if locale == "" || id == "" {
		return result.BadRequest("A locale and id must be given", "missing locale or id in URL")
	}

	data, ok, err := api.Store.Read(locale, id)
	if err != nil {
		return result.InternalServerError("could not read lexical entry %q/%q: %s", locale, id, serr.WrapDB("store read failed", err))
	}
	if !ok {
		return result.NotFound("no lexical entry %q/%q: %s", locale, id, serr.New("", serr.ErrNotFound))
	}

	return result.OK(toLexicalDataModel(data), "read lexical entry %q/%q", locale, id)
}

// lexicalEntryRequest is the body HTTPWriteLexicalEntry expects.
type lexicalEntryRequest struct {
	Locale string      `json:"locale"`
	Symbol string      `json:"symbol"`
	Flags  []flagModel `json:"flags"`
}

// HTTPWriteLexicalEntry returns a HandlerFunc that writes (creates or
// updates) one lexicon entry. It requires a valid bearer token, since it
// mutates the shared LexicalStore.
func (api API) HTTPWriteLexicalEntry() http.HandlerFunc {
	return Endpoint(api.epWriteLexicalEntry)
}

func (api API) epWriteLexicalEntry(req *http.Request) result.Result {
	var body lexicalEntryRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest("Could not parse request", "%s", err)
	}
	if body.Locale == "" || body.Symbol == "" {
		return result.BadRequest("locale and symbol must be given", "missing locale or symbol in request")
	}

	flags := make([]lexicon.Flag, len(body.Flags))
	for i, f := range body.Flags {
		flags[i] = lexicon.Flag{ConceptID: f.ConceptID, TypeCode: f.TypeCode}
	}

	data := lexicon.LexicalData{
		ID:     lexicon.HashID(body.Symbol),
		Locale: body.Locale,
		Symbol: body.Symbol,
		Flags:  lexicon.NewFlagMap(flags...),
	}

	written, err := api.Store.Write(data)
	if err != nil {
		return result.InternalServerError("could not write lexical entry %q/%q: %s", body.Locale, data.ID, serr.WrapDB("store write failed", err))
	}

	return result.Created(toLexicalDataModel(written), "wrote lexical entry %q/%q", body.Locale, written.ID)
}
