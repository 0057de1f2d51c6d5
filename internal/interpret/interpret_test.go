package interpret

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cartkeeper/cartkeeper/internal/annotate"
	"github.com/cartkeeper/cartkeeper/internal/command"
	"github.com/cartkeeper/cartkeeper/internal/language"
)

// stubAnnotator returns a fixed annotation (or error) on every call and
// records the text it was given.
type stubAnnotator struct {
	ann      *annotate.Annotation
	err      error
	captured string
}

func (s *stubAnnotator) Name() string { return "stub" }

func (s *stubAnnotator) Annotate(_ context.Context, text, _ string) (*annotate.Annotation, error) {
	s.captured = text
	if s.err != nil {
		return nil, s.err
	}
	return s.ann, nil
}

func (s *stubAnnotator) Close() error { return nil }

func noun(text string) annotate.Token {
	return annotate.Token{Text: text, Lemma: text, POS: annotate.PosNoun}
}

func verb(text, lemma string) annotate.Token {
	return annotate.Token{Text: text, Lemma: lemma, POS: annotate.PosVerb}
}

func newRegistry(t *testing.T) *language.Registry {
	t.Helper()
	return language.NewRegistry(nil)
}

// ---------------------------------------------------------------------------
// Intent classification
// ---------------------------------------------------------------------------

func TestClassifyIntent_NoKeywordMatches(t *testing.T) {
	profile := newRegistry(t).Resolve("en")

	tokens := []annotate.Token{
		{Text: "hello", Lemma: "hello", POS: annotate.PosOther},
		{Text: "there", Lemma: "there", POS: annotate.PosOther},
	}

	assert.Equal(t, command.IntentNone, classifyIntent(tokens, profile))
}

func TestClassifyIntent_EmptyTokens(t *testing.T) {
	profile := newRegistry(t).Resolve("en")
	assert.Equal(t, command.IntentNone, classifyIntent(nil, profile))
}

// TestClassifyIntent_AddBeatsSearch verifies the priority invariant: when
// keywords for both add and search appear, add wins regardless of position.
func TestClassifyIntent_AddBeatsSearch(t *testing.T) {
	profile := newRegistry(t).Resolve("en")

	tokens := []annotate.Token{
		verb("find", "find"), // search keyword first in the sentence
		noun("milk"),
		verb("buy", "buy"), // add keyword later
	}

	assert.Equal(t, command.IntentAdd, classifyIntent(tokens, profile))
}

func TestClassifyIntent_MatchesOnLemma(t *testing.T) {
	profile := newRegistry(t).Resolve("en")

	// Surface form differs from the lemma; only the lemma is consulted.
	tokens := []annotate.Token{verb("added", "add"), noun("milk")}

	assert.Equal(t, command.IntentAdd, classifyIntent(tokens, profile))
}

func TestClassifyIntent_SpanishProfile(t *testing.T) {
	profile := newRegistry(t).Resolve("es")

	tokens := []annotate.Token{verb("quitar", "quitar"), noun("leche")}

	assert.Equal(t, command.IntentRemove, classifyIntent(tokens, profile))
}

// ---------------------------------------------------------------------------
// Entity resolution
// ---------------------------------------------------------------------------

func TestResolveEntities_ItemLikeLabels(t *testing.T) {
	entities := []annotate.Entity{
		{Text: "toothpaste", Label: annotate.LabelItemLike},
		{Text: "Sparkle", Label: annotate.LabelOrgLike},
		{Text: "Sevilla", Label: annotate.LabelPlaceLike},
	}

	fragments, quantity, price := resolveEntities(nil, entities)

	assert.Equal(t, []string{"toothpaste", "Sparkle", "Sevilla"}, fragments)
	assert.Empty(t, quantity)
	assert.Nil(t, price)
}

func TestResolveEntities_QuantityLastWins(t *testing.T) {
	entities := []annotate.Entity{
		{Text: "two", Label: annotate.LabelCardinal},
		{Text: "three kilos", Label: annotate.LabelQuantity},
	}

	_, quantity, _ := resolveEntities(nil, entities)

	assert.Equal(t, "three kilos", quantity)
}

func TestResolveEntities_MoneyWithNumericToken(t *testing.T) {
	entities := []annotate.Entity{
		{
			Text:  "under 10 dollars",
			Label: annotate.LabelMoney,
			Tokens: []annotate.Token{
				{Text: "under", Lemma: "under", POS: annotate.PosOther},
				{Text: "10", Lemma: "10", POS: annotate.PosOther, Numeric: true},
				{Text: "dollars", Lemma: "dollar", POS: annotate.PosNoun},
			},
		},
	}

	_, _, price := resolveEntities(nil, entities)

	require.NotNil(t, price)
	assert.Equal(t, 10.0, *price)
}

// A money span with no numeric token is silently skipped; the price ceiling
// stays unset and no error is surfaced.
func TestResolveEntities_MoneyWithoutNumericToken(t *testing.T) {
	entities := []annotate.Entity{
		{
			Text:  "free",
			Label: annotate.LabelMoney,
			Tokens: []annotate.Token{
				{Text: "free", Lemma: "free", POS: annotate.PosOther},
			},
		},
	}

	_, _, price := resolveEntities(nil, entities)

	assert.Nil(t, price)
}

func TestResolveEntities_FallbackToNounTokens(t *testing.T) {
	tokens := []annotate.Token{
		verb("remove", "remove"),
		{Text: "the", Lemma: "the", POS: annotate.PosOther, Stop: true},
		noun("milk"),
		{Text: ".", Lemma: ".", POS: annotate.PosOther, Punct: true},
	}

	fragments, _, _ := resolveEntities(tokens, nil)

	assert.Equal(t, []string{"milk"}, fragments)
}

func TestResolveEntities_FallbackSkipsStopNouns(t *testing.T) {
	tokens := []annotate.Token{
		{Text: "thing", Lemma: "thing", POS: annotate.PosNoun, Stop: true},
		{Text: "Sparkle", Lemma: "sparkle", POS: annotate.PosProperNoun},
	}

	fragments, _, _ := resolveEntities(tokens, nil)

	assert.Equal(t, []string{"Sparkle"}, fragments)
}

// Entities take precedence: the token fallback only runs when no entity
// produced an item fragment.
func TestResolveEntities_NoFallbackWhenEntityPresent(t *testing.T) {
	tokens := []annotate.Token{noun("milk"), noun("bread")}
	entities := []annotate.Entity{{Text: "toothpaste", Label: annotate.LabelItemLike}}

	fragments, _, _ := resolveEntities(tokens, entities)

	assert.Equal(t, []string{"toothpaste"}, fragments)
}

// ---------------------------------------------------------------------------
// Normalization
// ---------------------------------------------------------------------------

func TestNormalize_QuantityDefaultsToOne(t *testing.T) {
	profile := newRegistry(t).Resolve("en")

	cmd := normalize(command.IntentAdd, []string{"milk"}, "", nil, profile)

	assert.Equal(t, "1", cmd.Quantity)
}

func TestNormalize_QuantityPreserved(t *testing.T) {
	profile := newRegistry(t).Resolve("en")

	cmd := normalize(command.IntentAdd, []string{"milk"}, "3", nil, profile)

	assert.Equal(t, "3", cmd.Quantity)
}

// Keywords from every intent are stripped, not just the matched one.
func TestNormalize_StripsKeywordsFromAllIntents(t *testing.T) {
	profile := newRegistry(t).Resolve("en")

	cmd := normalize(command.IntentAdd, []string{"add find milk"}, "", nil, profile)

	assert.Equal(t, "milk", cmd.Item)
}

// TestNormalize_StrippingIsIdempotent verifies that stripping an
// already-stripped item string is a no-op.
func TestNormalize_StrippingIsIdempotent(t *testing.T) {
	profile := newRegistry(t).Resolve("en")

	once := normalize(command.IntentAdd, []string{"buy organic milk"}, "", nil, profile)
	twice := normalize(command.IntentAdd, []string{once.Item}, "", nil, profile)

	assert.Equal(t, once.Item, twice.Item)
}

// Substring removal over-strips by design: "add" is removed from "addison".
// This matches the historical behavior.
func TestNormalize_SubstringRemovalOverStrips(t *testing.T) {
	profile := newRegistry(t).Resolve("en")

	cmd := normalize(command.IntentAdd, []string{"addison crackers"}, "", nil, profile)

	assert.Equal(t, "ison crackers", cmd.Item)
}

func TestNormalize_EmptyItemIsValid(t *testing.T) {
	profile := newRegistry(t).Resolve("en")

	cmd := normalize(command.IntentNone, nil, "", nil, profile)

	assert.Equal(t, "", cmd.Item)
	assert.False(t, cmd.Resolved())
}

// ---------------------------------------------------------------------------
// Full pipeline scenarios
// ---------------------------------------------------------------------------

func TestInterpret_AddTwoApples(t *testing.T) {
	tokens := []annotate.Token{
		verb("add", "add"),
		{Text: "two", Lemma: "two", POS: annotate.PosOther, Numeric: true},
		noun("apples"),
	}
	stub := &stubAnnotator{ann: &annotate.Annotation{
		Tokens: tokens,
		Entities: []annotate.Entity{
			{Text: "apples", Label: annotate.LabelItemLike, Tokens: tokens[2:3]},
			{Text: "two", Label: annotate.LabelCardinal, Tokens: tokens[1:2]},
		},
	}}

	engine := New(newRegistry(t), stub)
	cmd, err := engine.Interpret(context.Background(), "Add two apples", "en")

	require.NoError(t, err)
	assert.Equal(t, command.IntentAdd, cmd.Action)
	assert.Equal(t, "apples", cmd.Item)
	assert.Equal(t, "two", cmd.Quantity)
	assert.Nil(t, cmd.PriceCeiling)
	assert.True(t, cmd.Resolved())

	// Input is lowercased before annotation.
	assert.Equal(t, "add two apples", stub.captured)
}

func TestInterpret_QuitarLeche(t *testing.T) {
	stub := &stubAnnotator{ann: &annotate.Annotation{
		Tokens: []annotate.Token{
			verb("quitar", "quitar"),
			noun("leche"),
		},
	}}

	engine := New(newRegistry(t), stub)
	cmd, err := engine.Interpret(context.Background(), "quitar leche", "es")

	require.NoError(t, err)
	assert.Equal(t, command.IntentRemove, cmd.Action)
	assert.Equal(t, "leche", cmd.Item)
	assert.Equal(t, "1", cmd.Quantity)
	assert.Nil(t, cmd.PriceCeiling)
}

func TestInterpret_FindToothpasteUnderFiveDollars(t *testing.T) {
	moneyTokens := []annotate.Token{
		{Text: "under", Lemma: "under", POS: annotate.PosOther},
		{Text: "5", Lemma: "5", POS: annotate.PosOther, Numeric: true},
		{Text: "dollars", Lemma: "dollar", POS: annotate.PosNoun},
	}
	stub := &stubAnnotator{ann: &annotate.Annotation{
		Tokens: append([]annotate.Token{
			verb("find", "find"),
			noun("toothpaste"),
		}, moneyTokens...),
		Entities: []annotate.Entity{
			{Text: "toothpaste", Label: annotate.LabelItemLike},
			{Text: "under 5 dollars", Label: annotate.LabelMoney, Tokens: moneyTokens},
		},
	}}

	engine := New(newRegistry(t), stub)
	cmd, err := engine.Interpret(context.Background(), "find toothpaste under 5 dollars", "en")

	require.NoError(t, err)
	assert.Equal(t, command.IntentSearch, cmd.Action)
	assert.Equal(t, "toothpaste", cmd.Item)
	assert.Equal(t, "1", cmd.Quantity)
	require.NotNil(t, cmd.PriceCeiling)
	assert.Equal(t, 5.0, *cmd.PriceCeiling)
}

func TestInterpret_UnresolvedUtterance(t *testing.T) {
	stub := &stubAnnotator{ann: &annotate.Annotation{
		Tokens: []annotate.Token{
			{Text: "hello", Lemma: "hello", POS: annotate.PosOther},
			{Text: "there", Lemma: "there", POS: annotate.PosOther},
		},
	}}

	engine := New(newRegistry(t), stub)
	cmd, err := engine.Interpret(context.Background(), "hello there", "en")

	require.NoError(t, err)
	assert.Equal(t, command.IntentNone, cmd.Action)
	assert.Equal(t, "", cmd.Item)
	assert.Equal(t, "1", cmd.Quantity)
	assert.Nil(t, cmd.PriceCeiling)
	assert.False(t, cmd.Resolved())
}

// Unknown language codes interpret against the base profile instead of failing.
func TestInterpret_UnknownLanguageFallsBack(t *testing.T) {
	stub := &stubAnnotator{ann: &annotate.Annotation{
		Tokens: []annotate.Token{verb("add", "add"), noun("milk")},
	}}

	engine := New(newRegistry(t), stub)
	cmd, err := engine.Interpret(context.Background(), "add milk", "xx")

	require.NoError(t, err)
	assert.Equal(t, command.IntentAdd, cmd.Action)
	assert.Equal(t, "milk", cmd.Item)
}

func TestInterpret_AnnotatorError(t *testing.T) {
	stub := &stubAnnotator{err: errors.New("connection refused")}

	engine := New(newRegistry(t), stub)
	_, err := engine.Interpret(context.Background(), "add milk", "en")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "annotating text")
}
