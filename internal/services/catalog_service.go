package services

import (
	"errors"

	"jivuma/internal/domain"
	"jivuma/internal/repos"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogService struct {
	Products *repos.CatalogRepo
}

func NewCatalogService(products *repos.CatalogRepo) *CatalogService {
	return &CatalogService{Products: products}
}

func (s *CatalogService) List() []domain.Product {
	return s.Products.List()
}

func (s *CatalogService) Get(id int64) (domain.Product, error) {
	p, ok := s.Products.Get(id)
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}
