// Package language implements the per-language intent keyword registry.
//
// A Profile maps each intent to the set of lemmas that trigger it. Profiles
// are registered once at startup and are read-only afterwards; resolving an
// unknown language code silently falls back to the base ("en") profile, so a
// lookup never fails.
package language

import (
	"strings"

	"github.com/cartkeeper/cartkeeper/internal/command"
	"github.com/cartkeeper/cartkeeper/internal/config"
)

// BaseCode is the language whose profile backs unknown codes.
const BaseCode = "en"

// Profile holds the intent keyword vocabulary for one language.
type Profile struct {
	code     string
	keywords map[command.Intent][]string
	sets     map[command.Intent]map[string]struct{}
}

// NewProfile builds a Profile from per-intent keyword lists. Keywords are
// lowercased; list order is preserved for deterministic stripping.
func NewProfile(code string, keywords map[command.Intent][]string) *Profile {
	p := &Profile{
		code:     strings.ToLower(code),
		keywords: make(map[command.Intent][]string, len(keywords)),
		sets:     make(map[command.Intent]map[string]struct{}, len(keywords)),
	}
	for intent, words := range keywords {
		set := make(map[string]struct{}, len(words))
		list := make([]string, 0, len(words))
		for _, w := range words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			if _, dup := set[w]; dup {
				continue
			}
			set[w] = struct{}{}
			list = append(list, w)
		}
		p.keywords[intent] = list
		p.sets[intent] = set
	}
	return p
}

// Code returns the ISO-639-1 code this profile was registered under.
func (p *Profile) Code() string { return p.code }

// Matches reports whether lemma is a keyword for the given intent.
func (p *Profile) Matches(intent command.Intent, lemma string) bool {
	_, ok := p.sets[intent][lemma]
	return ok
}

// AllKeywords returns every keyword across all intents, in intent priority
// order then registration order. The normalizer strips each of these from
// the joined item string.
func (p *Profile) AllKeywords() []string {
	var all []string
	for _, intent := range command.Intents {
		all = append(all, p.keywords[intent]...)
	}
	return all
}

// Registry resolves language codes to profiles.
type Registry struct {
	profiles map[string]*Profile
	base     *Profile
}

// builtin is the default keyword vocabulary shipped with cartkeeper.
var builtin = map[string]map[command.Intent][]string{
	"en": {
		command.IntentAdd:    {"add", "buy", "get", "want", "need"},
		command.IntentRemove: {"remove", "delete"},
		command.IntentSearch: {"find", "search"},
	},
	"es": {
		command.IntentAdd:    {"añadir", "comprar", "quiero", "necesito"},
		command.IntentRemove: {"quitar", "eliminar"},
		command.IntentSearch: {"buscar", "encontrar"},
	},
}

// NewRegistry builds a registry with the built-in profiles plus any overrides
// from configuration. A config entry for an existing code replaces that
// profile wholesale; entries for new codes register new profiles. Intent
// names that aren't add/remove/search are ignored.
func NewRegistry(overrides map[string]config.IntentKeywords) *Registry {
	r := &Registry{profiles: make(map[string]*Profile, len(builtin)+len(overrides))}

	for code, kw := range builtin {
		r.profiles[code] = NewProfile(code, kw)
	}

	for code, kw := range overrides {
		mapped := make(map[command.Intent][]string, len(kw))
		for name, words := range kw {
			switch intent := command.Intent(strings.ToLower(name)); intent {
			case command.IntentAdd, command.IntentRemove, command.IntentSearch:
				mapped[intent] = words
			}
		}
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" || len(mapped) == 0 {
			continue
		}
		r.profiles[code] = NewProfile(code, mapped)
	}

	r.base = r.profiles[BaseCode]
	return r
}

// Resolve returns the profile for code, or the base profile when the code is
// unknown or empty. It never returns nil.
func (r *Registry) Resolve(code string) *Profile {
	if p, ok := r.profiles[strings.ToLower(strings.TrimSpace(code))]; ok {
		return p
	}
	return r.base
}

// Codes returns the registered language codes. Intended for startup logging.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.profiles))
	for code := range r.profiles {
		codes = append(codes, code)
	}
	return codes
}
