package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cartkeeper/cartkeeper/internal/command"
	"github.com/cartkeeper/cartkeeper/internal/store"
	"github.com/cartkeeper/cartkeeper/internal/suggest"
)

// commandRequest is the body for /voice-command and /search.
type commandRequest struct {
	// Text is the free-form utterance ("add two apples", "quitar leche").
	Text string `json:"text"`

	// Lang is the ISO-639-1 language code. Unknown codes fall back to "en".
	Lang string `json:"lang"`
}

// searchResponse is the body returned by /search.
type searchResponse struct {
	Status      string          `json:"status"`
	SearchQuery string          `json:"search_query"`
	FoundItems  []store.Product `json:"found_items"`
}

// suggestionsResponse is the body returned by /suggestions.
type suggestionsResponse struct {
	SeasonalSuggestions []string `json:"seasonal_suggestions"`
	FrequentlyBought    []string `json:"frequently_bought"`
}

// handleVoiceCommand processes an add/remove command.
//
// @Summary     Interpret and apply a voice command
// @Description Interprets free-form text into a structured command and applies it to the
// @Description shopping list. Add commands return the created item plus substitute
// @Description suggestions; remove commands delete the first fuzzy name match.
// @Tags        commands
// @Accept      json
// @Produce     json
// @Param       request  body      commandRequest  true  "Utterance and language code"
// @Success     200  {object}  statusResponse  "Command applied"
// @Failure     400  {object}  statusResponse  "Missing text or unresolvable command"
// @Failure     404  {object}  statusResponse  "Item to remove not found"
// @Router      /voice-command [post]
func (s *Server) handleVoiceCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	cmd, err := s.engine.Interpret(r.Context(), req.Text, req.Lang)
	if err != nil {
		slog.Error("interpretation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Interpretation failed.")
		return
	}
	if !cmd.Resolved() {
		writeError(w, http.StatusBadRequest, "Could not understand the command.")
		return
	}

	switch cmd.Action {
	case command.IntentAdd:
		s.applyAdd(w, r, cmd)
	case command.IntentRemove:
		s.applyRemove(w, r, cmd)
	default:
		writeError(w, http.StatusBadRequest, "Action not recognized.")
	}
}

func (s *Server) applyAdd(w http.ResponseWriter, r *http.Request, cmd command.Command) {
	substitutes := s.tables.SubstitutesFor(cmd.Item)

	item := &store.ShoppingItem{
		Name:     cases.Title(language.Und).String(cmd.Item),
		Quantity: cmd.Quantity,
		Category: s.tables.Categorize(cmd.Item),
	}
	if err := s.store.AddItem(r.Context(), item); err != nil {
		slog.Error("adding item failed", "item", cmd.Item, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not add the item.")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:                "success",
		Message:               fmt.Sprintf("Added %s.", cmd.Item),
		Item:                  item,
		SubstituteSuggestions: substitutes,
	})
}

func (s *Server) applyRemove(w http.ResponseWriter, r *http.Request, cmd command.Command) {
	removed, err := s.store.RemoveByName(r.Context(), cmd.Item)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Could not find %s on the list.", cmd.Item))
		return
	}
	if err != nil {
		slog.Error("removing item failed", "item", cmd.Item, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not remove the item.")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Removed %s.", removed.Name),
	})
}

// handleSearch filters the product catalog from a voice query.
//
// @Summary     Search the product catalog
// @Description Interprets free-form text and searches the catalog by item name, optionally
// @Description filtered by the price ceiling extracted from the utterance.
// @Tags        commands
// @Accept      json
// @Produce     json
// @Param       request  body      commandRequest  true  "Utterance and language code"
// @Success     200  {object}  searchResponse  "Matching products"
// @Failure     400  {object}  statusResponse  "Missing text or no item identified"
// @Router      /search [post]
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "No text provided")
		return
	}

	cmd, err := s.engine.Interpret(r.Context(), req.Text, req.Lang)
	if err != nil {
		slog.Error("interpretation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Interpretation failed.")
		return
	}
	if cmd.Item == "" {
		writeError(w, http.StatusBadRequest, "Could not identify an item to search for.")
		return
	}

	products, err := s.store.SearchProducts(r.Context(), cmd.Item, cmd.PriceCeiling)
	if err != nil {
		slog.Error("catalog search failed", "item", cmd.Item, "error", err)
		writeError(w, http.StatusInternalServerError, "Search failed.")
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Status:      "success",
		SearchQuery: req.Text,
		FoundItems:  products,
	})
}

// handleSuggestions returns seasonal and history-based suggestions.
//
// @Summary     Smart suggestions
// @Description Returns seasonal recommendations for the current season plus the most
// @Description frequently bought items that aren't currently on the list.
// @Tags        suggestions
// @Produce     json
// @Success     200  {object}  suggestionsResponse
// @Router      /suggestions [get]
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	season := suggest.SeasonOf(s.now())
	seasonal := s.tables.SeasonalItems(season)

	items, err := s.store.ListItems(r.Context())
	if err != nil {
		slog.Error("listing items failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load suggestions.")
		return
	}
	onList := make(map[string]struct{}, len(items))
	for _, item := range items {
		onList[strings.ToLower(item.Name)] = struct{}{}
	}

	frequent, err := s.store.FrequentNames(r.Context(), 5)
	if err != nil {
		slog.Error("aggregating history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load suggestions.")
		return
	}

	history := make([]string, 0, 3)
	for _, name := range frequent {
		if _, ok := onList[strings.ToLower(name)]; ok {
			continue
		}
		history = append(history, name)
		if len(history) == 3 {
			break
		}
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{
		SeasonalSuggestions: seasonal,
		FrequentlyBought:    history,
	})
}

// handleList returns the current shopping list.
//
// @Summary     Current shopping list
// @Produce     json
// @Success     200  {array}  store.ShoppingItem
// @Router      /list [get]
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := s.store.ListItems(r.Context())
	if err != nil {
		slog.Error("listing items failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Could not load the list.")
		return
	}
	if items == nil {
		items = []store.ShoppingItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// handleDeleteItem removes a list entry by ID.
//
// @Summary     Delete an item by ID
// @Produce     json
// @Param       id   path      int  true  "Item ID"
// @Success     200  {object}  statusResponse  "Item removed"
// @Failure     400  {object}  statusResponse  "Invalid ID"
// @Failure     404  {object}  statusResponse  "Item not found"
// @Router      /item/{id} [delete]
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item ID.")
		return
	}

	removed, err := s.store.RemoveByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Item with ID %d not found.", id))
		return
	}
	if err != nil {
		slog.Error("deleting item failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Could not remove the item.")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: fmt.Sprintf("Removed %s from the list.", removed.Name),
	})
}
