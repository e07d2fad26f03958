package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrCampaignNotFound = errors.New("campaign not found")

type Campaign struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Location    string
	Urgency     string
	Description string
	Image       string

	Goal decimal.Decimal `gorm:"type:numeric(15,2);not null"`

	// CurrentAmount is only ever written by DonationDAO, inside the same
	// transaction that inserts the ledger row.
	CurrentAmount decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`

	Due time.Time `gorm:"type:date"`

	// NOT NULL with a default, so "absent means false" is settled in the
	// schema and read paths only ever filter on is_deleted = false.
	IsDeleted bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// CampaignWithDonorCount is a scan target for the campaign listing query.
type CampaignWithDonorCount struct {
	Campaign   `gorm:"embedded"`
	DonorCount int64
}

type CampaignDAO struct {
	db *gorm.DB
}

func NewCampaignDAO(db *gorm.DB) *CampaignDAO {
	return &CampaignDAO{
		db: db,
	}
}

func (d *CampaignDAO) Insert(ctx context.Context, campaign Campaign) (Campaign, error) {
	result := d.db.WithContext(ctx).Create(&campaign)
	if result.Error != nil {
		return Campaign{}, result.Error
	}

	return campaign, nil
}

// FindActiveByID looks up a campaign that exists and is not soft-deleted,
// both conditions in a single query.
func (d *CampaignDAO) FindActiveByID(ctx context.Context, id uint) (Campaign, error) {
	var campaign Campaign

	result := d.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&campaign)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Campaign{}, ErrCampaignNotFound
		}

		return Campaign{}, result.Error
	}

	return campaign, nil
}

// ListActiveWithDonorCounts returns every non-deleted campaign annotated
// with the count of distinct donors from the ledger, ordered by id.
func (d *CampaignDAO) ListActiveWithDonorCounts(ctx context.Context) ([]CampaignWithDonorCount, error) {
	var rows []CampaignWithDonorCount

	result := d.db.WithContext(ctx).
		Model(&Campaign{}).
		Select("campaigns.*, COUNT(DISTINCT donations.donor_id) AS donor_count").
		Joins("LEFT JOIN donations ON donations.campaign_id = campaigns.id").
		Where("campaigns.is_deleted = ?", false).
		Group("campaigns.id").
		Order("campaigns.id ASC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// UpdateMetadata rewrites the descriptive fields of an active campaign.
// CurrentAmount and IsDeleted are not reachable through this path.
func (d *CampaignDAO) UpdateMetadata(ctx context.Context, campaign Campaign) error {
	result := d.db.WithContext(ctx).
		Model(&Campaign{}).
		Where("id = ? AND is_deleted = ?", campaign.ID, false).
		Updates(map[string]interface{}{
			"title":       campaign.Title,
			"location":    campaign.Location,
			"urgency":     campaign.Urgency,
			"description": campaign.Description,
			"image":       campaign.Image,
			"goal":        campaign.Goal,
			"due":         campaign.Due,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}

	return nil
}

// SoftDelete marks an active campaign deleted. Deleting a missing or
// already-deleted campaign reports not-found rather than succeeding silently.
func (d *CampaignDAO) SoftDelete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).
		Model(&Campaign{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCampaignNotFound
	}

	return nil
}

func (d *CampaignDAO) CountActive(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Campaign{}).
		Where("is_deleted = ?", false).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
