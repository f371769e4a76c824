package service

import (
	"context"
	"time"

	"avatar_platform/internal/logger"
	"avatar_platform/internal/metrics"
	"avatar_platform/internal/models"
	"avatar_platform/internal/repository"
)

// Accounts creates users and checks their credentials.
type Accounts interface {
	Create(ctx context.Context, email, name, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Verify(u *models.User, password string) bool
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Catalog exposes the read side of the product catalog plus its seed step.
type Catalog interface {
	Seed(ctx context.Context) (int, error)
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, slug string) (models.Product, error)
}

// SessionCodec signs and verifies the cookie values that carry identity and flashes.
type SessionCodec interface {
	Issue(userID int64) (string, Session, error)
	Parse(token string) (Session, error)
	SealFlashes(flashes []Flash) (string, error)
	OpenFlashes(token string) ([]Flash, error)
}

// Initializer prepares the store before requests are served.
type Initializer interface {
	Ensure(ctx context.Context)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Accounts
	Catalog
	Sessions  SessionCodec
	Bootstrap Initializer
}

// Deps carries what NewService needs beyond the repositories.
type Deps struct {
	Migrator      SchemaMigrator
	SessionSecret string
	SessionTTL    time.Duration
	Metrics       *metrics.Metrics
	Log           *logger.Logger
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, deps Deps) *Service {
	catalog := NewCatalogService(repos.Catalog)
	return &Service{
		Accounts:  NewAccountService(repos.Credentials),
		Catalog:   catalog,
		Sessions:  NewSessionService(deps.SessionSecret, deps.SessionTTL),
		Bootstrap: NewBootstrap(deps.Migrator, catalog, deps.Metrics, deps.Log),
	}
}
