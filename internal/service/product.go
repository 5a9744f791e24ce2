package service

import (
	"context"
	"fmt"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/logger"
	"furnirent-backend/internal/repository"
)

type productService struct {
	productRepo repository.ProductRepository
	auditRepo   repository.AuditRepository
}

func NewProductService(productRepo repository.ProductRepository, auditRepo repository.AuditRepository) ProductService {
	return &productService{
		productRepo: productRepo,
		auditRepo:   auditRepo,
	}
}

func (s *productService) AddProduct(ctx context.Context, actor domain.Actor, product *domain.Product) error {
	logger.EnterMethod("productService.AddProduct", "name", product.Name)

	if !actor.IsStaff() {
		return domain.ErrNotOwner
	}
	if product.PricePerDayCents < 0 {
		return fmt.Errorf("price per day must not be negative")
	}
	if product.Available < 0 {
		return fmt.Errorf("available quantity must not be negative")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.ExitMethodWithError("productService.AddProduct", err, "name", product.Name)
		return err
	}

	event := newAuditEvent(actor, "product-added", product.ID,
		fmt.Sprintf("product %q added, %d available", product.Name, product.Available))
	if err := s.auditRepo.Record(ctx, event); err != nil {
		logger.Error("Audit record failed", "action", "product-added", "entity_id", product.ID, "error", err)
	}

	logger.ExitMethod("productService.AddProduct", "productID", product.ID)
	return nil
}

func (s *productService) GetProduct(ctx context.Context, id int32) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) ListProducts(ctx context.Context, category string, page, pageSize int32) ([]domain.Product, int32, error) {
	return s.productRepo.List(ctx, category, page, pageSize)
}
