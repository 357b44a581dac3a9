package project

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/costquote/internal/logger"
	"github.com/Simplici0/costquote/internal/model"
	"github.com/Simplici0/costquote/internal/pricing"
)

// Repository is the persistence the project service needs.
type Repository interface {
	Settings(ctx context.Context) (model.Settings, error)
	CreateProject(ctx context.Context, p *model.Project) error
	ProjectByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	UpdateProject(ctx context.Context, p *model.Project) error
	DeleteProject(ctx context.Context, id uuid.UUID) error
}

// Draft is the user-editable part of a project.
type Draft struct {
	Name     string              `json:"name"`
	Currency string              `json:"currency"`
	Inputs   model.ProjectInputs `json:"inputs"`
}

// Service prices and stores pricing projects.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Preview computes the breakdown for d without saving anything.
func (s *Service) Preview(ctx context.Context, d Draft) (pricing.PricingBreakdown, error) {
	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return pricing.PricingBreakdown{}, err
	}
	return compute(d.Inputs, settings)
}

// Create prices d and stores it as a new project.
func (s *Service) Create(ctx context.Context, d Draft) (*model.Project, error) {
	p, err := s.build(ctx, d)
	if err != nil {
		return nil, err
	}
	p.ID = uuid.New()
	p.CreatedAt = p.UpdatedAt

	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	logger.Info(ctx, "project created",
		logger.String("project_id", p.ID.String()),
		logger.Float64("net_profit", p.Breakdown.NetProfit))
	return p, nil
}

// Update replaces the inputs of an existing project and recomputes it.
func (s *Service) Update(ctx context.Context, id uuid.UUID, d Draft) (*model.Project, error) {
	existing, err := s.repo.ProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p, err := s.build(ctx, d)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt

	if err := s.repo.UpdateProject(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	logger.Info(ctx, "project updated", logger.String("project_id", p.ID.String()))
	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	return s.repo.ProjectByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]model.Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return err
	}
	logger.Info(ctx, "project deleted", logger.String("project_id", id.String()))
	return nil
}

func (s *Service) build(ctx context.Context, d Draft) (*model.Project, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", model.ErrValidation)
	}

	settings, err := s.repo.Settings(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := compute(d.Inputs, settings)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(d.Currency))
	if currency == "" {
		currency = settings.Currency
	}

	return &model.Project{
		Name:      name,
		Currency:  currency,
		Inputs:    d.Inputs.Clone(),
		Breakdown: breakdown,
		UpdatedAt: s.now().UTC().Truncate(time.Microsecond),
	}, nil
}

func compute(in model.ProjectInputs, settings model.Settings) (pricing.PricingBreakdown, error) {
	return pricing.ComputeProductPricing(in.LineItems, in.CostsOr(settings.Overhead), in.Sale, in.TaxOr(settings.Tax))
}
