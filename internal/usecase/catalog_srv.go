package usecase

import (
	"context"
	"fmt"

	"homecare-booking/internal/data/repository"
	"homecare-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	GetServices(ctx context.Context) ([]response.ServiceResponse, error)
	GetServiceByID(ctx context.Context, serviceID string) (*response.ServiceResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetServices(ctx context.Context) ([]response.ServiceResponse, error) {
	services, err := s.repo.Service.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("get services: %w", err)
	}

	responses := make([]response.ServiceResponse, len(services))
	for i, svc := range services {
		responses[i] = response.ServiceToResponse(svc)
	}
	return responses, nil
}

func (s *catalogService) GetServiceByID(ctx context.Context, serviceID string) (*response.ServiceResponse, error) {
	id, err := uuid.Parse(serviceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", serviceID, err)
	}

	svc, err := s.repo.Service.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil || !svc.IsActive {
		return nil, fmt.Errorf("service %s: %w", serviceID, ErrNotFound)
	}

	resp := response.ServiceToResponse(svc)
	return &resp, nil
}
