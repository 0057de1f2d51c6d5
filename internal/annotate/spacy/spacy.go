// Package spacy implements the Annotator interface against a spaCy REST
// annotation service (e.g. spacy-api-docker or a small FastAPI wrapper
// around spaCy pipelines).
//
// The adapter speaks a minimal JSON contract: POST {"text": ..., "language":
// ...} to the annotation endpoint, which replies with tokens carrying spaCy's
// per-token features and entity spans referencing token index ranges. spaCy
// label and POS schemes are mapped to the engine's generic ones here, so the
// core never sees backend-specific vocabulary.
//
// One endpoint can be configured per language (one loaded model each), with
// a default endpoint as fallback for unlisted languages — unsupported codes
// therefore degrade to the default model instead of failing.
package spacy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cartkeeper/cartkeeper/internal/annotate"
	"github.com/cartkeeper/cartkeeper/internal/config"
)

// Annotator is an HTTP client for a spaCy REST annotation service.
type Annotator struct {
	endpoint  string
	endpoints map[string]string // ISO-639-1 code -> endpoint
	authToken string
	client    *http.Client
}

// New creates a spaCy annotator from config.
func New(cfg config.SpaCyConfig) *Annotator {
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Annotator{
		endpoint:  cfg.Endpoint,
		endpoints: cfg.Endpoints,
		authToken: cfg.AuthToken,
		client:    &http.Client{Timeout: timeout},
	}
}

// Name returns the backend identifier.
func (a *Annotator) Name() string { return "spacy" }

// endpointFor picks the per-language endpoint, falling back to the default.
func (a *Annotator) endpointFor(lang string) string {
	if ep, ok := a.endpoints[strings.ToLower(lang)]; ok && ep != "" {
		return ep
	}
	return a.endpoint
}

// wire types for the annotation service contract.

type annotateRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

type wireToken struct {
	Text    string `json:"text"`
	Lemma   string `json:"lemma"`
	Pos     string `json:"pos"` // UPOS tag: NOUN, PROPN, VERB, ...
	IsStop  bool   `json:"is_stop"`
	IsPunct bool   `json:"is_punct"`
	LikeNum bool   `json:"like_num"`
}

type wireEnt struct {
	Text  string `json:"text"`
	Label string `json:"label"` // spaCy NER label: PRODUCT, ORG, GPE, ...
	Start int    `json:"start"` // first token index of the span
	End   int    `json:"end"`   // one past the last token index
}

type annotateResponse struct {
	Tokens []wireToken `json:"tokens"`
	Ents   []wireEnt   `json:"ents"`
}

// Annotate sends text to the annotation service and maps the reply into the
// engine's generic token and entity types.
func (a *Annotator) Annotate(ctx context.Context, text, lang string) (*annotate.Annotation, error) {
	reqBody, err := json.Marshal(annotateRequest{Text: text, Language: lang})
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	endpoint := a.endpointFor(lang)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+a.authToken)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("annotation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("annotation failed (status %d): %s", resp.StatusCode, respBody)
	}

	var wire annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decoding annotation: %w", err)
	}

	ann := mapAnnotation(wire)
	slog.Debug("annotation complete",
		"endpoint", endpoint,
		"language", lang,
		"tokens", len(ann.Tokens),
		"entities", len(ann.Entities))
	return ann, nil
}

// Close is a no-op for the spaCy annotator.
func (a *Annotator) Close() error { return nil }

// mapAnnotation converts the wire format into engine types. Entities with
// labels outside the recognized scheme or with out-of-range token indices
// are dropped.
func mapAnnotation(wire annotateResponse) *annotate.Annotation {
	tokens := make([]annotate.Token, len(wire.Tokens))
	for i, wt := range wire.Tokens {
		tokens[i] = annotate.Token{
			Text:    wt.Text,
			Lemma:   wt.Lemma,
			POS:     mapPOS(wt.Pos),
			Stop:    wt.IsStop,
			Punct:   wt.IsPunct,
			Numeric: wt.LikeNum,
		}
	}

	var entities []annotate.Entity
	for _, we := range wire.Ents {
		label, ok := mapLabel(we.Label)
		if !ok {
			continue
		}
		if we.Start < 0 || we.End > len(tokens) || we.Start >= we.End {
			continue
		}
		entities = append(entities, annotate.Entity{
			Text:   we.Text,
			Label:  label,
			Tokens: tokens[we.Start:we.End],
		})
	}

	return &annotate.Annotation{Tokens: tokens, Entities: entities}
}

func mapPOS(pos string) annotate.PartOfSpeech {
	switch strings.ToUpper(pos) {
	case "NOUN":
		return annotate.PosNoun
	case "PROPN":
		return annotate.PosProperNoun
	case "VERB":
		return annotate.PosVerb
	default:
		return annotate.PosOther
	}
}

func mapLabel(label string) (annotate.Label, bool) {
	switch strings.ToUpper(label) {
	case "PRODUCT":
		return annotate.LabelItemLike, true
	case "ORG":
		return annotate.LabelOrgLike, true
	case "GPE", "LOC":
		return annotate.LabelPlaceLike, true
	case "QUANTITY":
		return annotate.LabelQuantity, true
	case "CARDINAL":
		return annotate.LabelCardinal, true
	case "MONEY":
		return annotate.LabelMoney, true
	default:
		return "", false
	}
}
