package service

import (
	"context"

	"avatar_platform/internal/models"
	"avatar_platform/internal/repository"
)

// ErrNotFound is returned by Get for unknown slugs.
var ErrNotFound = repository.ErrNotFound

// DemoProducts is the fixed catalog written on first start.
func DemoProducts() []models.Product {
	return []models.Product{
		{Slug: "talking-avatar", Title: "Talking Avatar", Description: "Type text and get a talking avatar video."},
		{Slug: "realtime-avatar", Title: "Real-time Avatar", Description: "Real-time voice-to-avatar conversation."},
		{Slug: "pdf-to-avatar", Title: "PDF → Avatar", Description: "Upload PDF, extract text and make avatars."},
		{Slug: "multilingual-avatar", Title: "Multilingual Avatar", Description: "Speak or type in multiple languages."},
	}
}

type CatalogService struct {
	store repository.CatalogStore
}

func NewCatalogService(store repository.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Seed writes DemoProducts when the catalog is empty.
func (s *CatalogService) Seed(ctx context.Context) (int, error) {
	return s.store.SeedIfEmpty(ctx, DemoProducts())
}

func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.store.ListAll(ctx)
}

func (s *CatalogService) Get(ctx context.Context, slug string) (models.Product, error) {
	return s.store.FindBySlug(ctx, slug)
}
