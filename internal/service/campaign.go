package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/relieflink/donations-api/internal/domain"
	"github.com/relieflink/donations-api/internal/repository"
)

var (
	ErrCampaignNotFound = repository.ErrCampaignNotFound
	ErrInvalidDueDate   = errors.New("due date is not in a recognized format")
	ErrInvalidGoal      = errors.New("goal must be greater than 0")
)

// dueDateLayouts are the accepted due-date inputs. Anything else is a
// validation failure, not a guess.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

type CampaignRepository interface {
	Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error)
	FindActiveByID(ctx context.Context, id uint) (domain.Campaign, error)
	ListActive(ctx context.Context) ([]domain.CampaignWithDonorCount, error)
	UpdateMetadata(ctx context.Context, campaign domain.Campaign) error
	SoftDelete(ctx context.Context, id uint) error
}

type CampaignService struct {
	repo CampaignRepository
}

func NewCampaignService(repo CampaignRepository) *CampaignService {
	return &CampaignService{
		repo: repo,
	}
}

// ParseDueDate normalizes any accepted date-like input to a bare calendar
// date, dropping the time-of-day component.
func ParseDueDate(input string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		parsed, err := time.Parse(layout, input)
		if err != nil {
			continue
		}

		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, ErrInvalidDueDate
}

// CreateCampaign stores a new campaign with a zeroed running total. Any
// authenticated user may create one.
func (s *CampaignService) CreateCampaign(ctx context.Context, campaign domain.Campaign, due string) (domain.Campaign, error) {
	if !campaign.Goal.IsPositive() {
		return domain.Campaign{}, ErrInvalidGoal
	}

	dueDate, err := ParseDueDate(due)
	if err != nil {
		return domain.Campaign{}, err
	}

	campaign.Due = dueDate
	campaign.CurrentAmount = decimal.Zero
	campaign.IsDeleted = false

	created, err := s.repo.Create(ctx, campaign)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CampaignService) ListCampaigns(ctx context.Context) ([]domain.CampaignWithDonorCount, error) {
	campaigns, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListActive -> %w", err)
	}

	return campaigns, nil
}

// UpdateCampaign rewrites descriptive metadata of an active campaign. The
// running total and the soft-delete flag are not reachable through this
// path; updating a missing or deleted campaign is not-found.
func (s *CampaignService) UpdateCampaign(ctx context.Context, campaign domain.Campaign, due string) error {
	if !campaign.Goal.IsPositive() {
		return ErrInvalidGoal
	}

	dueDate, err := ParseDueDate(due)
	if err != nil {
		return err
	}
	campaign.Due = dueDate

	if err := s.repo.UpdateMetadata(ctx, campaign); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return ErrCampaignNotFound
		}

		return fmt.Errorf("s.repo.UpdateMetadata -> %w", err)
	}

	return nil
}

// SoftDeleteCampaign retires an active campaign. The deletion is terminal
// and leaves the ledger untouched, so historical statistics survive.
func (s *CampaignService) SoftDeleteCampaign(ctx context.Context, id uint) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return ErrCampaignNotFound
		}

		return fmt.Errorf("s.repo.SoftDelete -> %w", err)
	}

	return nil
}
