package posapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"canteen-system/internal/database"
	"canteen-system/internal/models"
)

// PostgresCatalog serves menu items from the menu_items table
type PostgresCatalog struct {
	db *database.DB
}

// NewPostgresCatalog creates a catalog backed by PostgreSQL
func NewPostgresCatalog(db *database.DB) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

// MenuItem returns the menu item with the given ID, or nil when absent
func (c *PostgresCatalog) MenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	var item models.MenuItem
	err := c.db.QueryRow(ctx, database.GetMenuItemSQL, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.Available,
		&item.Popular,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}
	return &item, nil
}

// List returns all available menu items for the POS item picker
func (c *PostgresCatalog) List(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := c.db.Query(ctx, database.ListMenuItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.Category,
			&item.Available,
			&item.Popular,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// SalesRecorder persists finalized POS payments into the sales table
type SalesRecorder struct {
	db *database.DB
}

// NewSalesRecorder creates a sales recorder backed by PostgreSQL
func NewSalesRecorder(db *database.DB) *SalesRecorder {
	return &SalesRecorder{db: db}
}

// RecordSale inserts one sale row
func (r *SalesRecorder) RecordSale(ctx context.Context, sale *models.Sale) error {
	err := r.db.Exec(ctx, database.InsertSaleSQL,
		sale.ID,
		sale.SessionID,
		sale.Subtotal,
		sale.DiscountAmount,
		sale.Total,
		sale.Method,
		sale.PaidAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}
