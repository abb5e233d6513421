package api

import (
	"net/http"

	"github.com/dekarrin/lingot/internal/ling"
	"github.com/dekarrin/lingot/server/result"
)

// parseRequest is the body HTTPParse expects.
type parseRequest struct {
	Text string `json:"text"`
}

// linkModel is the wire form of one grammar.Link within a meaning.
type linkModel struct {
	Level       int    `json:"level"`
	Type        string `json:"type"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// meaningModel is the wire form of one meaning.Meaning.
type meaningModel struct {
	Levels int         `json:"levels"`
	Links  []linkModel `json:"links"`
}

// sentenceModel is the wire form of one ling.SentenceResult.
type sentenceModel struct {
	Sentence string         `json:"sentence"`
	Meanings []meaningModel `json:"meanings"`
}

// diagnosticsModel is the wire form of ling.Diagnostics.
type diagnosticsModel struct {
	PseudoNodeIDs   []string `json:"pseudoNodeIds"`
	FailedBindCount int      `json:"failedBindCount"`
}

// parseResponse is the body HTTPParse returns.
type parseResponse struct {
	Sentences   []sentenceModel  `json:"sentences"`
	Diagnostics diagnosticsModel `json:"diagnostics"`
}

// HTTPParse returns a HandlerFunc that parses the text given in the request
// body against the locale named in the URL and returns its meaning sets. It
// requires no authentication: parsing is read-only against the shared
// LexicalStore and RuleRegistry.
func (api API) HTTPParse() http.HandlerFunc {
	return Endpoint(api.epParse)
}

func (api API) epParse(req *http.Request) result.Result {
	locale := urlParam(req, "locale")
	if locale == "" {
		return result.BadRequest("A locale must be given", "no locale in URL")
	}

	var body parseRequest
	if err := parseJSON(req, &body); err != nil {
		return result.BadRequest("Could not parse request", "%s", err)
	}
	if body.Text == "" {
		return result.BadRequest("text must not be empty", "empty text given")
	}

	parser := ling.New(locale, api.Store, api.Registry, nil, api.MaxReductionDepth, api.MaxExpectedPaths)
	parseResult, err := parser.Parse(body.Text)
	if err != nil {
		return result.InternalServerError("parse failed for locale %q: %s", locale, err)
	}

	resp := parseResponse{
		Diagnostics: diagnosticsModel{
			PseudoNodeIDs:   parseResult.Diagnostics.PseudoNodeIDs,
			FailedBindCount: parseResult.Diagnostics.FailedBindCount,
		},
	}
	for _, sr := range parseResult.Sentences {
		sm := sentenceModel{Sentence: sr.Sentence}
		for _, m := range sr.Meanings {
			mm := meaningModel{Levels: m.Levels()}
			for _, link := range m.Links {
				mm.Links = append(mm.Links, linkModel{
					Level:       link.Level,
					Type:        link.Type,
					Source:      link.Source.Data.Symbol,
					Destination: link.Destination.Data.Symbol,
				})
			}
			sm.Meanings = append(sm.Meanings, mm)
		}
		resp.Sentences = append(resp.Sentences, sm)
	}

	return result.OK(resp, "parsed %d sentence(s) for locale %q", len(resp.Sentences), locale)
}
