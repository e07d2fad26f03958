package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/relieflink/donations-api/internal/domain"
	"github.com/relieflink/donations-api/internal/repository"
)

var (
	ErrInvalidAmount     = errors.New("amount is required and must be greater than 0")
	ErrMissingCampaignID = errors.New("campaign id is required")
	ErrMissingDonor      = errors.New("donor is required")
)

type DonationRepository interface {
	Record(ctx context.Context, donation domain.Donation) (domain.Donation, error)
	ListWithDonorNames(ctx context.Context) ([]domain.DonationWithDonor, error)
	TopDonors(ctx context.Context) ([]domain.DonorRanking, error)
	SumAmounts(ctx context.Context) (decimal.Decimal, error)
	SumSupplyUnits(ctx context.Context) (int64, error)
	CountDistinctDonors(ctx context.Context) (int64, error)
}

type ActiveCampaignCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type DonationService struct {
	repo         DonationRepository
	campaignRepo ActiveCampaignCounter
}

func NewDonationService(repo DonationRepository, campaignRepo ActiveCampaignCounter) *DonationService {
	return &DonationService{
		repo:         repo,
		campaignRepo: campaignRepo,
	}
}

// NormalizeSupplies coerces lenient client input to the one internal shape:
// nil becomes an empty list, everything downstream sees []string.
func NormalizeSupplies(supplies []string) []string {
	if supplies == nil {
		return []string{}
	}

	return supplies
}

// RecordDonation validates the request, then appends the ledger row and
// increments the campaign total in one atomic unit. Validation failures and
// the campaign check reject before anything is written; a storage failure
// mid-write rolls the whole unit back.
func (s *DonationService) RecordDonation(ctx context.Context, donorID, campaignID uint, amount decimal.Decimal, supplies []string) (domain.Donation, error) {
	if donorID == 0 {
		return domain.Donation{}, ErrMissingDonor
	}
	if !amount.IsPositive() {
		return domain.Donation{}, ErrInvalidAmount
	}
	if campaignID == 0 {
		return domain.Donation{}, ErrMissingCampaignID
	}

	donation := domain.Donation{
		Amount:     amount,
		Supplies:   NormalizeSupplies(supplies),
		DonorID:    donorID,
		CampaignID: campaignID,
	}

	created, err := s.repo.Record(ctx, donation)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return domain.Donation{}, ErrCampaignNotFound
		}

		return domain.Donation{}, fmt.Errorf("s.repo.Record -> %w", err)
	}

	return created, nil
}

func (s *DonationService) ListDonations(ctx context.Context) ([]domain.DonationWithDonor, error) {
	donations, err := s.repo.ListWithDonorNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListWithDonorNames -> %w", err)
	}

	return donations, nil
}

func (s *DonationService) TopDonors(ctx context.Context) ([]domain.DonorRanking, error) {
	rankings, err := s.repo.TopDonors(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.TopDonors -> %w", err)
	}

	return rankings, nil
}

// PlatformStats aggregates the entire ledger. Donations to soft-deleted
// campaigns still count; only the active-campaign count filters on the
// soft-delete flag.
func (s *DonationService) PlatformStats(ctx context.Context) (domain.PlatformStats, error) {
	totalDonated, err := s.repo.SumAmounts(ctx)
	if err != nil {
		return domain.PlatformStats{}, fmt.Errorf("s.repo.SumAmounts -> %w", err)
	}

	supplyUnits, err := s.repo.SumSupplyUnits(ctx)
	if err != nil {
		return domain.PlatformStats{}, fmt.Errorf("s.repo.SumSupplyUnits -> %w", err)
	}

	donors, err := s.repo.CountDistinctDonors(ctx)
	if err != nil {
		return domain.PlatformStats{}, fmt.Errorf("s.repo.CountDistinctDonors -> %w", err)
	}

	activeCampaigns, err := s.campaignRepo.CountActive(ctx)
	if err != nil {
		return domain.PlatformStats{}, fmt.Errorf("s.campaignRepo.CountActive -> %w", err)
	}

	return domain.PlatformStats{
		TotalDonated:        totalDonated,
		TotalSupplyUnits:    supplyUnits,
		DistinctDonors:      donors,
		ActiveCampaignCount: activeCampaigns,
	}, nil
}
