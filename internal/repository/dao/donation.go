package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Donation struct {
	ID uint `gorm:"primaryKey"`

	Amount   decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Supplies datatypes.JSON  `gorm:"type:jsonb;not null;default:'[]'"`

	DonorID    uint `gorm:"not null;index"`
	CampaignID uint `gorm:"not null;index"`

	Donor    User     `gorm:"foreignKey:DonorID"`
	Campaign Campaign `gorm:"foreignKey:CampaignID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// DonationWithDonor is a scan target for the donation listing query.
type DonationWithDonor struct {
	Donation  `gorm:"embedded"`
	DonorName string
}

// DonorTotal is a scan target for the top-donor query.
type DonorTotal struct {
	DonorName   string
	TotalAmount decimal.Decimal
}

type DonationDAO struct {
	db *gorm.DB
}

func NewDonationDAO(db *gorm.DB) *DonationDAO {
	return &DonationDAO{
		db: db,
	}
}

// InsertWithCampaignIncrement appends a ledger row and adds its amount to
// the owning campaign's running total as one transaction. The increment is
// expressed in SQL against the stored value, so concurrent donations to the
// same campaign serialize on the row without losing updates. The campaign
// existence/soft-delete check runs inside the same transaction; if anything
// fails, neither the row nor the total survives.
func (d *DonationDAO) InsertWithCampaignIncrement(ctx context.Context, donation Donation) (Donation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var campaign Campaign
		if err := tx.Where("id = ? AND is_deleted = ?", donation.CampaignID, false).
			First(&campaign).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCampaignNotFound
			}

			return err
		}

		if err := tx.Create(&donation).Error; err != nil {
			return err
		}

		result := tx.Model(&Campaign{}).
			Where("id = ?", donation.CampaignID).
			UpdateColumn("current_amount", gorm.Expr("current_amount + ?", donation.Amount))
		if result.Error != nil {
			return result.Error
		}

		return nil
	})
	if err != nil {
		return Donation{}, err
	}

	return donation, nil
}

// ListWithDonorNames returns the whole ledger, newest first, with the donor
// username resolved. Donors that cannot be resolved render as "Anonymous".
func (d *DonationDAO) ListWithDonorNames(ctx context.Context) ([]DonationWithDonor, error) {
	var rows []DonationWithDonor

	result := d.db.WithContext(ctx).
		Model(&Donation{}).
		Select("donations.*, COALESCE(users.username, 'Anonymous') AS donor_name").
		Joins("LEFT JOIN users ON users.id = donations.donor_id").
		Order("donations.id DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// TopDonors sums the ledger per donor, largest total first. Users with no
// donations do not appear.
func (d *DonationDAO) TopDonors(ctx context.Context) ([]DonorTotal, error) {
	var rows []DonorTotal

	result := d.db.WithContext(ctx).
		Table("users").
		Select("users.username AS donor_name, COALESCE(SUM(donations.amount), 0) AS total_amount").
		Joins("INNER JOIN donations ON donations.donor_id = users.id").
		Group("users.id, users.username").
		Order("total_amount DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *DonationDAO) SumAmounts(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal

	row := d.db.WithContext(ctx).
		Model(&Donation{}).
		Select("COALESCE(SUM(amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

// SumByCampaignID re-sums the ledger for one campaign. The donation write
// path keeps campaigns.current_amount equal to this at all times.
func (d *DonationDAO) SumByCampaignID(ctx context.Context, campaignID uint) (decimal.Decimal, error) {
	var total decimal.Decimal

	row := d.db.WithContext(ctx).
		Model(&Donation{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("campaign_id = ?", campaignID).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (d *DonationDAO) SumSupplyUnits(ctx context.Context) (int64, error) {
	var total int64

	row := d.db.WithContext(ctx).
		Model(&Donation{}).
		Select("COALESCE(SUM(jsonb_array_length(supplies)), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (d *DonationDAO) CountDistinctDonors(ctx context.Context) (int64, error) {
	var count int64

	row := d.db.WithContext(ctx).
		Model(&Donation{}).
		Select("COUNT(DISTINCT donor_id)").
		Row()
	if err := row.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
