// Package interpret implements the command interpretation engine.
//
// The engine turns one free-form utterance into a structured shopping
// command: resolve the language profile, annotate the text (external),
// classify the intent, resolve entities into item/quantity/price, then
// normalize into an immutable Command. Sparse or unintelligible input is
// never an error — it yields an unresolved Command that the caller must
// check before acting. The only error path is annotator transport failure.
//
// The engine is stateless per call and safe for concurrent use as long as
// the annotator is.
package interpret

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cartkeeper/cartkeeper/internal/annotate"
	"github.com/cartkeeper/cartkeeper/internal/command"
	"github.com/cartkeeper/cartkeeper/internal/language"
)

// Engine interprets utterances against a language registry and an annotator.
type Engine struct {
	registry  *language.Registry
	annotator annotate.Annotator
}

// New creates an Engine.
func New(registry *language.Registry, annotator annotate.Annotator) *Engine {
	return &Engine{registry: registry, annotator: annotator}
}

// Interpret runs text through the full pipeline and returns the resulting
// Command. lang is an ISO-639-1 code; unknown codes fall back to the base
// profile and the annotator's default model.
func (e *Engine) Interpret(ctx context.Context, text, lang string) (command.Command, error) {
	profile := e.registry.Resolve(lang)

	ann, err := e.annotator.Annotate(ctx, strings.ToLower(text), lang)
	if err != nil {
		return command.Command{}, fmt.Errorf("annotating text: %w", err)
	}

	action := classifyIntent(ann.Tokens, profile)
	fragments, quantity, price := resolveEntities(ann.Tokens, ann.Entities)
	cmd := normalize(action, fragments, quantity, price, profile)

	slog.Debug("interpretation complete",
		"language", profile.Code(),
		"action", string(cmd.Action),
		"item", cmd.Item,
		"quantity", cmd.Quantity,
		"has_price", cmd.PriceCeiling != nil,
		"resolved", cmd.Resolved())

	return cmd, nil
}
