// Package annotate defines the interface for external linguistic annotation.
//
// An annotator takes raw text and a language code, then produces annotated
// tokens (lemma, part of speech, stop-word and punctuation flags) and named
// entity spans. Tokenization, lemmatization, POS tagging and NER are never
// performed in-process: cartkeeper ships one backend, an HTTP adapter for a
// spaCy REST service (see the spacy subpackage).
package annotate

import "context"

// PartOfSpeech is the coarse grammatical class of a token.
type PartOfSpeech string

const (
	PosNoun       PartOfSpeech = "noun"
	PosProperNoun PartOfSpeech = "propn"
	PosVerb       PartOfSpeech = "verb"
	PosOther      PartOfSpeech = "other"
)

// Label classifies what kind of thing an entity span names.
type Label string

const (
	// LabelItemLike marks spans naming a product or thing.
	LabelItemLike Label = "item"

	// LabelOrgLike marks spans naming an organization. Annotators routinely
	// tag brand names as organizations, so callers treat these as item-like.
	LabelOrgLike Label = "org"

	// LabelPlaceLike marks spans naming a place; treated as item-like for the
	// same reason as LabelOrgLike.
	LabelPlaceLike Label = "place"

	// LabelQuantity marks measured amounts ("two kilos").
	LabelQuantity Label = "quantity"

	// LabelCardinal marks bare numerals ("two", "3").
	LabelCardinal Label = "cardinal"

	// LabelMoney marks monetary phrases ("under 5 dollars").
	LabelMoney Label = "money"
)

// Token is one word or unit of input text enriched with linguistic features.
// Tokens are immutable and scoped to a single annotation call.
type Token struct {
	// Text is the surface form as it appeared in the input.
	Text string `json:"text"`

	// Lemma is the dictionary form ("añadir" for "añade").
	Lemma string `json:"lemma"`

	// POS is the coarse part of speech.
	POS PartOfSpeech `json:"pos"`

	// Stop is true for function words the annotator considers stop words.
	Stop bool `json:"stop"`

	// Punct is true for punctuation tokens.
	Punct bool `json:"punct"`

	// Numeric is true when the token reads as a number ("5", "10").
	Numeric bool `json:"numeric"`
}

// Entity is a contiguous run of tokens the annotator judges to name a thing
// of a particular kind.
type Entity struct {
	// Text is the full surface text of the span.
	Text string `json:"text"`

	// Label says what kind of thing the span names.
	Label Label `json:"label"`

	// Tokens are the annotated tokens covering the span, in order.
	Tokens []Token `json:"tokens"`
}

// Annotation is the full output of one annotation call.
type Annotation struct {
	Tokens   []Token  `json:"tokens"`
	Entities []Entity `json:"entities"`
}

// Annotator is the interface for external linguistic annotation services.
//
// Implementations must be deterministic for identical input, must not fail
// for well-formed UTF-8 text, and should fall back to a default model when
// the language code is unsupported. Implementations must be safe for
// concurrent use; the interpretation engine calls Annotate from multiple
// request handlers without coordination.
type Annotator interface {
	// Name returns the backend identifier (e.g., "spacy").
	Name() string

	// Annotate runs the text through the backend for the given ISO-639-1
	// language code and returns tokens plus entity spans.
	Annotate(ctx context.Context, text, lang string) (*Annotation, error)

	// Close releases any resources held by the annotator.
	Close() error
}
