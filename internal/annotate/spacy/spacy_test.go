package spacy_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartkeeper/cartkeeper/internal/annotate"
	"github.com/cartkeeper/cartkeeper/internal/annotate/spacy"
	"github.com/cartkeeper/cartkeeper/internal/config"
)

// annotationFixture is a spaCy-shaped reply for "add two apples".
const annotationFixture = `{
	"tokens": [
		{"text": "add", "lemma": "add", "pos": "VERB"},
		{"text": "two", "lemma": "two", "pos": "NUM", "like_num": true},
		{"text": "apples", "lemma": "apple", "pos": "NOUN"}
	],
	"ents": [
		{"text": "two", "label": "CARDINAL", "start": 1, "end": 2},
		{"text": "apples", "label": "PRODUCT", "start": 2, "end": 3}
	]
}`

func TestAnnotate_MapsTokensAndEntities(t *testing.T) {
	var gotReq struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(annotationFixture))
	}))
	defer srv.Close()

	a := spacy.New(config.SpaCyConfig{Endpoint: srv.URL})
	ann, err := a.Annotate(context.Background(), "add two apples", "en")
	require.NoError(t, err)

	assert.Equal(t, "add two apples", gotReq.Text)
	assert.Equal(t, "en", gotReq.Language)

	require.Len(t, ann.Tokens, 3)
	assert.Equal(t, annotate.PosVerb, ann.Tokens[0].POS)
	assert.True(t, ann.Tokens[1].Numeric)
	assert.Equal(t, annotate.PosNoun, ann.Tokens[2].POS)
	assert.Equal(t, "apple", ann.Tokens[2].Lemma)

	require.Len(t, ann.Entities, 2)
	assert.Equal(t, annotate.LabelCardinal, ann.Entities[0].Label)
	assert.Equal(t, annotate.LabelItemLike, ann.Entities[1].Label)
	require.Len(t, ann.Entities[1].Tokens, 1)
	assert.Equal(t, "apples", ann.Entities[1].Tokens[0].Text)
}

func TestAnnotate_DropsUnknownLabelsAndBadSpans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"tokens": [{"text": "milk", "lemma": "milk", "pos": "NOUN"}],
			"ents": [
				{"text": "milk", "label": "PERSON", "start": 0, "end": 1},
				{"text": "milk", "label": "PRODUCT", "start": 0, "end": 5},
				{"text": "milk", "label": "PRODUCT", "start": 1, "end": 1}
			]
		}`))
	}))
	defer srv.Close()

	a := spacy.New(config.SpaCyConfig{Endpoint: srv.URL})
	ann, err := a.Annotate(context.Background(), "milk", "en")
	require.NoError(t, err)

	assert.Len(t, ann.Tokens, 1)
	assert.Empty(t, ann.Entities)
}

// Per-language endpoints take precedence; unlisted languages fall back to
// the default endpoint.
func TestAnnotate_PerLanguageEndpointFallback(t *testing.T) {
	hits := map[string]int{}
	handler := func(name string) http.HandlerFunc {
		return func(w http.ResponseWriter, _ *http.Request) {
			hits[name]++
			_, _ = w.Write([]byte(`{"tokens": [], "ents": []}`))
		}
	}
	defaultSrv := httptest.NewServer(handler("default"))
	defer defaultSrv.Close()
	esSrv := httptest.NewServer(handler("es"))
	defer esSrv.Close()

	a := spacy.New(config.SpaCyConfig{
		Endpoint:  defaultSrv.URL,
		Endpoints: map[string]string{"es": esSrv.URL},
	})

	_, err := a.Annotate(context.Background(), "quitar leche", "es")
	require.NoError(t, err)
	_, err = a.Annotate(context.Background(), "retirer le lait", "fr")
	require.NoError(t, err)

	assert.Equal(t, 1, hits["es"])
	assert.Equal(t, 1, hits["default"])
}

func TestAnnotate_AuthTokenHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"tokens": [], "ents": []}`))
	}))
	defer srv.Close()

	a := spacy.New(config.SpaCyConfig{Endpoint: srv.URL, AuthToken: "sekrit"})
	_, err := a.Annotate(context.Background(), "add milk", "en")
	require.NoError(t, err)

	assert.Equal(t, "Bearer sekrit", gotAuth)
}

func TestAnnotate_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := spacy.New(config.SpaCyConfig{Endpoint: srv.URL})
	_, err := a.Annotate(context.Background(), "add milk", "en")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}
