package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relieflink/donations-api/internal/domain"
	"github.com/relieflink/donations-api/internal/repository"
)

type fakeCampaignRepo struct {
	created   []domain.Campaign
	updated   []domain.Campaign
	deleted   []uint
	updateErr error
	deleteErr error
}

func (f *fakeCampaignRepo) Create(_ context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	campaign.ID = uint(len(f.created) + 1)
	f.created = append(f.created, campaign)

	return campaign, nil
}

func (f *fakeCampaignRepo) FindActiveByID(_ context.Context, id uint) (domain.Campaign, error) {
	return domain.Campaign{ID: id}, nil
}

func (f *fakeCampaignRepo) ListActive(_ context.Context) ([]domain.CampaignWithDonorCount, error) {
	return nil, nil
}

func (f *fakeCampaignRepo) UpdateMetadata(_ context.Context, campaign domain.Campaign) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, campaign)

	return nil
}

func (f *fakeCampaignRepo) SoftDelete(_ context.Context, id uint) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)

	return nil
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"RFC3339 with milliseconds", "2025-12-21T20:00:00.000Z", "2025-12-21"},
		{"RFC3339", "2025-12-21T20:00:00Z", "2025-12-21"},
		{"bare date", "2025-12-21", "2025-12-21"},
		{"day first", "21/12/2025", "2025-12-21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseDueDate(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed.Format(domain.DueDateFormat))
		})
	}

	t.Run("rejects unrecognized input", func(t *testing.T) {
		_, err := ParseDueDate("next tuesday")
		assert.ErrorIs(t, err, ErrInvalidDueDate)
	})
}

func TestCreateCampaign(t *testing.T) {
	t.Run("zeroes the running total and normalizes the due date", func(t *testing.T) {
		repo := &fakeCampaignRepo{}
		svc := NewCampaignService(repo)

		created, err := svc.CreateCampaign(context.Background(), domain.Campaign{
			Title: "Flood relief",
			Goal:  decimal.NewFromInt(1000),
			// A creation request cannot smuggle in a total or a deletion.
			CurrentAmount: decimal.NewFromInt(999),
			IsDeleted:     true,
		}, "2025-12-21T20:00:00.000Z")

		require.NoError(t, err)
		assert.True(t, created.CurrentAmount.IsZero())
		assert.False(t, created.IsDeleted)
		assert.Equal(t, "2025-12-21", created.Due.Format(domain.DueDateFormat))
	})

	t.Run("rejects a non-positive goal", func(t *testing.T) {
		repo := &fakeCampaignRepo{}
		svc := NewCampaignService(repo)

		_, err := svc.CreateCampaign(context.Background(), domain.Campaign{
			Title: "Flood relief",
			Goal:  decimal.Zero,
		}, "2025-12-21")

		assert.ErrorIs(t, err, ErrInvalidGoal)
		assert.Empty(t, repo.created)
	})
}

func TestUpdateCampaign(t *testing.T) {
	t.Run("maps missing or deleted campaigns to not-found", func(t *testing.T) {
		repo := &fakeCampaignRepo{updateErr: repository.ErrCampaignNotFound}
		svc := NewCampaignService(repo)

		err := svc.UpdateCampaign(context.Background(), domain.Campaign{
			ID:    42,
			Title: "Updated",
			Goal:  decimal.NewFromInt(500),
		}, "2025-12-21")

		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})

	t.Run("updates metadata of an active campaign", func(t *testing.T) {
		repo := &fakeCampaignRepo{}
		svc := NewCampaignService(repo)

		err := svc.UpdateCampaign(context.Background(), domain.Campaign{
			ID:    42,
			Title: "Updated",
			Goal:  decimal.NewFromInt(500),
		}, "2025-12-21")

		require.NoError(t, err)
		require.Len(t, repo.updated, 1)
		assert.Equal(t, "Updated", repo.updated[0].Title)
	})
}

func TestSoftDeleteCampaign(t *testing.T) {
	t.Run("double delete is not-found", func(t *testing.T) {
		repo := &fakeCampaignRepo{deleteErr: repository.ErrCampaignNotFound}
		svc := NewCampaignService(repo)

		err := svc.SoftDeleteCampaign(context.Background(), 42)

		assert.ErrorIs(t, err, ErrCampaignNotFound)
	})

	t.Run("deletes an active campaign", func(t *testing.T) {
		repo := &fakeCampaignRepo{}
		svc := NewCampaignService(repo)

		err := svc.SoftDeleteCampaign(context.Background(), 42)

		require.NoError(t, err)
		assert.Equal(t, []uint{42}, repo.deleted)
	})
}
