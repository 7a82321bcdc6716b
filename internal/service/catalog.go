package service

import (
	"context"

	"medieaze-storefront/internal/model"
	"medieaze-storefront/internal/repository"
)

type CatalogService interface {
	List(ctx context.Context) ([]*model.Product, error)
	Get(ctx context.Context, productID string) (*model.Product, error)
	ByCategory(ctx context.Context, category string) ([]*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{
		productRepo: productRepo,
	}
}

func (s *catalogServiceImpl) List(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogServiceImpl) Get(ctx context.Context, productID string) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}

func (s *catalogServiceImpl) ByCategory(ctx context.Context, category string) ([]*model.Product, error) {
	return s.productRepo.GetByCategory(ctx, category)
}
