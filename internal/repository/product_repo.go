package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"avatar_platform/internal/models"
)

type ProductRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewProductRepository(db *sql.DB, dialect Dialect) *ProductRepository {
	return &ProductRepository{db: db, dialect: dialect}
}

var _ CatalogStore = (*ProductRepository)(nil)

const (
	countProductsSQL = `SELECT COUNT(*) FROM products`
	insertProductSQL = `
		INSERT INTO products (slug, title, description, thumbnail)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slug) DO NOTHING
	`
	selectProductColumns   = `SELECT id, slug, title, description, thumbnail FROM products`
	selectProductsSQL      = selectProductColumns + ` ORDER BY id ASC`
	selectProductBySlugSQL = selectProductColumns + ` WHERE slug = $1`
)

// SeedIfEmpty inserts products only when the catalog holds no rows and
// returns how many rows were written. Slug conflicts are skipped, so
// concurrent callers cannot produce duplicates.
func (r *ProductRepository) SeedIfEmpty(ctx context.Context, products []models.Product) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var count int
	if err := tx.QueryRowContext(ctx, countProductsSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, p := range products {
		res, err := tx.ExecContext(ctx, r.dialect.Rebind(insertProductSQL),
			p.Slug,
			p.Title,
			nullableString(p.Description),
			nullableString(p.Thumbnail),
		)
		if err != nil {
			return 0, fmt.Errorf("insert product %q: %w", p.Slug, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected for product %q: %w", p.Slug, err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed transaction: %w", err)
	}
	return inserted, nil
}

// ListAll returns every product in insertion order.
func (r *ProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	out := make([]models.Product, 0, 8)
	for rows.Next() {
		var p models.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return out, nil
}

// FindBySlug returns ErrNotFound when no product carries slug.
func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (models.Product, error) {
	var p models.Product
	err := scanProduct(r.db.QueryRowContext(ctx, r.dialect.Rebind(selectProductBySlugSQL), slug), &p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, fmt.Errorf("product %q: %w", slug, ErrNotFound)
		}
		return models.Product{}, fmt.Errorf("select product %q: %w", slug, err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, p *models.Product) error {
	var description, thumbnail sql.NullString
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &description, &thumbnail); err != nil {
		return err
	}
	p.Description = description.String
	p.Thumbnail = thumbnail.String
	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
