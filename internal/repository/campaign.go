package repository

import (
	"context"
	"fmt"

	"github.com/relieflink/donations-api/internal/domain"
	"github.com/relieflink/donations-api/internal/repository/dao"
)

var ErrCampaignNotFound = dao.ErrCampaignNotFound

type CampaignDAO interface {
	Insert(ctx context.Context, campaign dao.Campaign) (dao.Campaign, error)
	FindActiveByID(ctx context.Context, id uint) (dao.Campaign, error)
	ListActiveWithDonorCounts(ctx context.Context) ([]dao.CampaignWithDonorCount, error)
	UpdateMetadata(ctx context.Context, campaign dao.Campaign) error
	SoftDelete(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
}

type CampaignRepository struct {
	dao CampaignDAO
}

func NewCampaignRepository(dao CampaignDAO) *CampaignRepository {
	return &CampaignRepository{
		dao: dao,
	}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(campaign))
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CampaignRepository) FindActiveByID(ctx context.Context, id uint) (domain.Campaign, error) {
	found, err := r.dao.FindActiveByID(ctx, id)
	if err != nil {
		return domain.Campaign{}, fmt.Errorf("r.dao.FindActiveByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CampaignRepository) ListActive(ctx context.Context) ([]domain.CampaignWithDonorCount, error) {
	rows, err := r.dao.ListActiveWithDonorCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListActiveWithDonorCounts -> %w", err)
	}

	campaigns := make([]domain.CampaignWithDonorCount, len(rows))
	for i, row := range rows {
		campaigns[i] = domain.CampaignWithDonorCount{
			Campaign:   r.daoToDomain(row.Campaign),
			DonorCount: row.DonorCount,
		}
	}

	return campaigns, nil
}

func (r *CampaignRepository) UpdateMetadata(ctx context.Context, campaign domain.Campaign) error {
	if err := r.dao.UpdateMetadata(ctx, r.domainToDao(campaign)); err != nil {
		return fmt.Errorf("r.dao.UpdateMetadata -> %w", err)
	}

	return nil
}

func (r *CampaignRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := r.dao.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.SoftDelete -> %w", err)
	}

	return nil
}

func (r *CampaignRepository) CountActive(ctx context.Context) (int64, error) {
	count, err := r.dao.CountActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActive -> %w", err)
	}

	return count, nil
}

func (r *CampaignRepository) domainToDao(c domain.Campaign) dao.Campaign {
	return dao.Campaign{
		ID:            c.ID,
		Title:         c.Title,
		Location:      c.Location,
		Urgency:       c.Urgency,
		Description:   c.Description,
		Image:         c.Image,
		Goal:          c.Goal,
		CurrentAmount: c.CurrentAmount,
		Due:           c.Due,
		IsDeleted:     c.IsDeleted,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r *CampaignRepository) daoToDomain(c dao.Campaign) domain.Campaign {
	return domain.Campaign{
		ID:            c.ID,
		Title:         c.Title,
		Location:      c.Location,
		Urgency:       c.Urgency,
		Description:   c.Description,
		Image:         c.Image,
		Goal:          c.Goal,
		CurrentAmount: c.CurrentAmount,
		Due:           c.Due,
		IsDeleted:     c.IsDeleted,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
