package repository

import (
	"context"
	"database/sql"

	"avatar_platform/internal/models"
)

// CredentialStore persists user accounts. Email uniqueness is enforced by the store.
type CredentialStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (int64, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// CatalogStore persists products addressed by slug.
type CatalogStore interface {
	SeedIfEmpty(ctx context.Context, products []models.Product) (int, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	FindBySlug(ctx context.Context, slug string) (models.Product, error)
}

type Repository struct {
	Credentials CredentialStore
	Catalog     CatalogStore
}

func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{
		Credentials: NewUserRepository(db, dialect),
		Catalog:     NewProductRepository(db, dialect),
	}
}
