package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a removal targets an item that isn't on the list.
var ErrNotFound = errors.New("item not found")

// ShoppingItem represents one entry on the shopping list.
type ShoppingItem struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Quantity string    `json:"quantity"`
	Category string    `json:"category"`
	AddedOn  time.Time `json:"added_on"`
}

// AddItem appends an item to the shopping list and fills in its ID. Every
// add is also recorded in the item history, which survives removals and
// feeds the frequency-based suggestions.
func (s *Store) AddItem(ctx context.Context, item *ShoppingItem) error {
	item.AddedOn = time.Now()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO shopping_items (name, quantity, category, added_on)
		VALUES (?, ?, ?, ?)
	`, item.Name, item.Quantity, item.Category, item.AddedOn)
	if err != nil {
		return fmt.Errorf("adding item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading item id: %w", err)
	}
	item.ID = id

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO item_history (name, added_on) VALUES (?, ?)
	`, item.Name, item.AddedOn); err != nil {
		return fmt.Errorf("recording item history: %w", err)
	}
	return nil
}

// ListItems returns the current shopping list, most recently added first.
func (s *Store) ListItems(ctx context.Context) ([]ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, category, added_on
		FROM shopping_items
		ORDER BY added_on DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []ShoppingItem
	for rows.Next() {
		var item ShoppingItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.Category, &item.AddedOn); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// RemoveByName removes the first item whose name contains the given text,
// case-insensitively. Returns the removed item, or ErrNotFound when nothing
// matches.
func (s *Store) RemoveByName(ctx context.Context, name string) (*ShoppingItem, error) {
	item := &ShoppingItem{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, quantity, category, added_on
		FROM shopping_items
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
		ORDER BY id
		LIMIT 1
	`, name).Scan(&item.ID, &item.Name, &item.Quantity, &item.Category, &item.AddedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding item by name: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM shopping_items WHERE id = ?", item.ID); err != nil {
		return nil, fmt.Errorf("removing item: %w", err)
	}
	return item, nil
}

// RemoveByID removes an item by primary key. Returns the removed item, or
// ErrNotFound when the ID doesn't exist.
func (s *Store) RemoveByID(ctx context.Context, id int64) (*ShoppingItem, error) {
	item := &ShoppingItem{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, quantity, category, added_on
		FROM shopping_items
		WHERE id = ?
	`, id).Scan(&item.ID, &item.Name, &item.Quantity, &item.Category, &item.AddedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding item by id: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM shopping_items WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("removing item: %w", err)
	}
	return item, nil
}

// FrequentNames returns the most frequently added item names across the
// whole item history, most frequent first, capped at limit. Removed items
// still count: the history is what makes "frequently bought" suggestions
// possible after the list has been cleared.
func (s *Store) FrequentNames(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name
		FROM item_history
		GROUP BY name
		ORDER BY COUNT(name) DESC, name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("aggregating item names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
