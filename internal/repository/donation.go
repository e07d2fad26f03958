package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/relieflink/donations-api/internal/domain"
	"github.com/relieflink/donations-api/internal/repository/dao"
)

type DonationDAO interface {
	InsertWithCampaignIncrement(ctx context.Context, donation dao.Donation) (dao.Donation, error)
	ListWithDonorNames(ctx context.Context) ([]dao.DonationWithDonor, error)
	TopDonors(ctx context.Context) ([]dao.DonorTotal, error)
	SumAmounts(ctx context.Context) (decimal.Decimal, error)
	SumByCampaignID(ctx context.Context, campaignID uint) (decimal.Decimal, error)
	SumSupplyUnits(ctx context.Context) (int64, error)
	CountDistinctDonors(ctx context.Context) (int64, error)
}

type DonationRepository struct {
	dao DonationDAO
}

func NewDonationRepository(dao DonationDAO) *DonationRepository {
	return &DonationRepository{
		dao: dao,
	}
}

// Record appends a ledger row and bumps the campaign total atomically via
// the DAO's single-transaction insert.
func (r *DonationRepository) Record(ctx context.Context, donation domain.Donation) (domain.Donation, error) {
	donationDAO, err := r.domainToDao(donation)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("r.domainToDao -> %w", err)
	}

	created, err := r.dao.InsertWithCampaignIncrement(ctx, donationDAO)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("r.dao.InsertWithCampaignIncrement -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *DonationRepository) ListWithDonorNames(ctx context.Context) ([]domain.DonationWithDonor, error) {
	rows, err := r.dao.ListWithDonorNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListWithDonorNames -> %w", err)
	}

	donations := make([]domain.DonationWithDonor, len(rows))
	for i, row := range rows {
		donations[i] = domain.DonationWithDonor{
			Donation:  r.daoToDomain(row.Donation),
			DonorName: row.DonorName,
		}
	}

	return donations, nil
}

func (r *DonationRepository) TopDonors(ctx context.Context) ([]domain.DonorRanking, error) {
	rows, err := r.dao.TopDonors(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TopDonors -> %w", err)
	}

	rankings := make([]domain.DonorRanking, len(rows))
	for i, row := range rows {
		rankings[i] = domain.DonorRanking{
			DonorName:   row.DonorName,
			TotalAmount: row.TotalAmount,
		}
	}

	return rankings, nil
}

func (r *DonationRepository) SumAmounts(ctx context.Context) (decimal.Decimal, error) {
	total, err := r.dao.SumAmounts(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.SumAmounts -> %w", err)
	}

	return total, nil
}

func (r *DonationRepository) SumByCampaignID(ctx context.Context, campaignID uint) (decimal.Decimal, error) {
	total, err := r.dao.SumByCampaignID(ctx, campaignID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.SumByCampaignID -> %w", err)
	}

	return total, nil
}

func (r *DonationRepository) SumSupplyUnits(ctx context.Context) (int64, error) {
	total, err := r.dao.SumSupplyUnits(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumSupplyUnits -> %w", err)
	}

	return total, nil
}

func (r *DonationRepository) CountDistinctDonors(ctx context.Context) (int64, error) {
	count, err := r.dao.CountDistinctDonors(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountDistinctDonors -> %w", err)
	}

	return count, nil
}

func (r *DonationRepository) domainToDao(d domain.Donation) (dao.Donation, error) {
	supplies := d.Supplies
	if supplies == nil {
		supplies = []string{}
	}

	encoded, err := json.Marshal(supplies)
	if err != nil {
		return dao.Donation{}, fmt.Errorf("json.Marshal -> %w", err)
	}

	return dao.Donation{
		ID:         d.ID,
		Amount:     d.Amount,
		Supplies:   datatypes.JSON(encoded),
		DonorID:    d.DonorID,
		CampaignID: d.CampaignID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}, nil
}

func (r *DonationRepository) daoToDomain(d dao.Donation) domain.Donation {
	// Rows predating the jsonb column may hold values that no longer decode;
	// those render as an empty list rather than failing the read.
	supplies := []string{}
	if len(d.Supplies) > 0 {
		if err := json.Unmarshal(d.Supplies, &supplies); err != nil {
			supplies = []string{}
		}
	}

	return domain.Donation{
		ID:         d.ID,
		Amount:     d.Amount,
		Supplies:   supplies,
		DonorID:    d.DonorID,
		CampaignID: d.CampaignID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
