package services

import (
	"ctstudio/internal/domain"
	"ctstudio/internal/repos"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) List() ([]domain.Product, error) {
	return s.Prods.ListAvailable()
}

func (s *CatalogService) ListByCategory(category string) ([]domain.Product, error) {
	return s.Prods.ListByCategory(category)
}

func (s *CatalogService) Get(id int64) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Create(in repos.ProductInput) (domain.Product, error) {
	return s.Prods.Create(in)
}

func (s *CatalogService) Update(id int64, in repos.ProductInput) (domain.Product, error) {
	return s.Prods.Update(id, in)
}

func (s *CatalogService) SoftDelete(id int64) (bool, error) {
	return s.Prods.SoftDelete(id)
}

// Featured returns the subset of the catalog shown on the home page.
func (s *CatalogService) Featured() ([]domain.Product, error) {
	all, err := s.Prods.ListAvailable()
	if err != nil {
		return nil, err
	}
	out := all[:0:0]
	for _, p := range all {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}
