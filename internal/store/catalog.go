package store

import (
	"context"
	"fmt"
)

// Product represents an entry in the searchable product catalog.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// sampleProducts seed the catalog on first run so search has something to hit.
var sampleProducts = []Product{
	{Name: "organic milk", Brand: "Happy Cow", Price: 4.50, Category: "Dairy"},
	{Name: "whole wheat bread", Brand: "Good Grains", Price: 3.20, Category: "Bakery"},
	{Name: "toothpaste", Brand: "Sparkle", Price: 2.99, Category: "Health"},
	{Name: "toothpaste", Brand: "FreshBreeze", Price: 5.50, Category: "Health"},
	{Name: "organic apples", Brand: "Orchard Fresh", Price: 6.00, Category: "Produce"},
	{Name: "soda", Brand: "FizzUp", Price: 1.50, Category: "Drinks"},
}

// SeedCatalog inserts the sample products when the catalog is empty.
func (s *Store) SeedCatalog(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range sampleProducts {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO products (name, brand, price, category)
			VALUES (?, ?, ?, ?)
		`, p.Name, p.Brand, p.Price, p.Category); err != nil {
			return fmt.Errorf("seeding product %q: %w", p.Name, err)
		}
	}
	return nil
}

// SearchProducts returns catalog entries whose name contains the given text,
// case-insensitively. A non-nil maxPrice additionally filters to products at
// or under that price.
func (s *Store) SearchProducts(ctx context.Context, name string, maxPrice *float64) ([]Product, error) {
	query := `
		SELECT id, name, brand, price, category
		FROM products
		WHERE name LIKE '%' || ? || '%' COLLATE NOCASE
	`
	args := []any{name}
	if maxPrice != nil {
		query += " AND price <= ?"
		args = append(args, *maxPrice)
	}
	query += " ORDER BY price, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Price, &p.Category); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
