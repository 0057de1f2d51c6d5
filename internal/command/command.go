// Package command defines the core data types flowing through the cartkeeper pipeline.
package command

// Intent is the coarse action a shopping command expresses.
type Intent string

const (
	// IntentNone marks a command whose action could not be determined.
	IntentNone Intent = ""

	// IntentAdd puts an item on the shopping list.
	IntentAdd Intent = "add"

	// IntentRemove takes an item off the shopping list.
	IntentRemove Intent = "remove"

	// IntentSearch queries the product catalog.
	IntentSearch Intent = "search"
)

// Intents lists all recognizable intents in classification priority order.
// A sentence matching both an add-word and a search-word resolves to add.
var Intents = []Intent{IntentAdd, IntentRemove, IntentSearch}

// Command is the structured, immutable result of interpreting one utterance.
//
// A Command with Action == IntentNone or Item == "" is unresolved: a valid,
// representable outcome that callers must check before acting on it. The
// engine never reports sparse or malformed input as an error.
type Command struct {
	// Action is the interpreted intent. IntentNone if no keyword matched.
	Action Intent `json:"action"`

	// Item is the target item name, trimmed and stripped of intent keywords.
	// Empty if no item could be identified.
	Item string `json:"item"`

	// Quantity is the extracted quantity as spoken ("two", "3"). Never empty:
	// absent extraction normalizes to "1".
	Quantity string `json:"quantity"`

	// PriceCeiling is the maximum price extracted from a money phrase.
	// Nil when the utterance carried no usable price.
	PriceCeiling *float64 `json:"price_ceiling,omitempty"`
}

// Resolved reports whether the command carries both an action and an item
// and is therefore safe to act upon.
func (c Command) Resolved() bool {
	return c.Action != IntentNone && c.Item != ""
}
