package interpret

import (
	"strconv"
	"strings"

	"github.com/cartkeeper/cartkeeper/internal/annotate"
	"github.com/cartkeeper/cartkeeper/internal/command"
	"github.com/cartkeeper/cartkeeper/internal/language"
)

// resolveEntities extracts item-name fragments, a quantity, and a price
// ceiling from the annotator's entity spans.
//
// Item-like, org-like and place-like entities all contribute fragments:
// annotators routinely tag product and brand names as organizations or
// places, and a named entity of any of these kinds is a stronger item
// signal than bare tokens. Quantity and cardinal entities set the quantity,
// last one wins. Money entities set the price ceiling from their first
// numeric token; a money span with no parseable numeric token is silently
// skipped, leaving the ceiling unset.
//
// When no entity produced an item fragment, the fallback collects noun and
// proper-noun tokens that are neither stop words nor punctuation, in
// sentence order. This is the common path for short commands like
// "remove milk" where the annotator finds no named entities at all.
func resolveEntities(tokens []annotate.Token, entities []annotate.Entity) (fragments []string, quantity string, price *float64) {
	for _, ent := range entities {
		switch ent.Label {
		case annotate.LabelItemLike, annotate.LabelOrgLike, annotate.LabelPlaceLike:
			fragments = append(fragments, ent.Text)
		case annotate.LabelQuantity, annotate.LabelCardinal:
			quantity = ent.Text
		case annotate.LabelMoney:
			for _, tok := range ent.Tokens {
				if !tok.Numeric {
					continue
				}
				if v, err := strconv.ParseFloat(tok.Text, 64); err == nil {
					price = &v
				}
				break
			}
		}
	}

	if len(fragments) == 0 {
		for _, tok := range tokens {
			if (tok.POS == annotate.PosNoun || tok.POS == annotate.PosProperNoun) && !tok.Stop && !tok.Punct {
				fragments = append(fragments, tok.Text)
			}
		}
	}

	return fragments, quantity, price
}

// normalize joins the resolved fields into a final Command.
//
// Every keyword across all of the profile's intents is stripped from the
// joined item string by literal substring removal — not just the matched
// intent's keywords, since entity mis-segmentation can leave a residual
// verb from another intent's vocabulary in a fragment. Substring removal
// can over-strip ("add" out of "addison"); this matches the historical
// behavior and is kept deliberately. An absent quantity becomes "1". An
// empty resulting item is a valid unresolved outcome, not an error.
func normalize(action command.Intent, fragments []string, quantity string, price *float64, profile *language.Profile) command.Command {
	item := strings.Join(fragments, " ")
	for _, kw := range profile.AllKeywords() {
		item = strings.ReplaceAll(item, kw, "")
	}
	item = strings.TrimSpace(item)

	if quantity == "" {
		quantity = "1"
	}

	return command.Command{
		Action:       action,
		Item:         item,
		Quantity:     quantity,
		PriceCeiling: price,
	}
}
