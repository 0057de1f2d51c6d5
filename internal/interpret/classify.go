package interpret

import (
	"github.com/cartkeeper/cartkeeper/internal/annotate"
	"github.com/cartkeeper/cartkeeper/internal/command"
	"github.com/cartkeeper/cartkeeper/internal/language"
)

// classifyIntent scans token lemmas against the profile's keyword sets.
//
// Intents are evaluated in fixed priority order (add, remove, search) and
// the first intent with any matching lemma wins, regardless of where its
// keyword sits in the sentence. A sentence carrying both an add-word and a
// search-word therefore resolves to add. Returns IntentNone when nothing
// matches, including for an empty token sequence.
func classifyIntent(tokens []annotate.Token, profile *language.Profile) command.Intent {
	for _, intent := range command.Intents {
		for _, tok := range tokens {
			if profile.Matches(intent, tok.Lemma) {
				return intent
			}
		}
	}
	return command.IntentNone
}
