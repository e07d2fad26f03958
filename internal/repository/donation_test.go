package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/relieflink/donations-api/internal/domain"
	"github.com/relieflink/donations-api/internal/repository/dao"
)

func TestDonationSuppliesMapping(t *testing.T) {
	repo := NewDonationRepository(nil)

	t.Run("round-trips a supply list", func(t *testing.T) {
		donationDAO, err := repo.domainToDao(domain.Donation{
			Amount:   decimal.NewFromInt(10),
			Supplies: []string{"food", "water"},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `["food","water"]`, string(donationDAO.Supplies))

		back := repo.daoToDomain(donationDAO)
		assert.Equal(t, []string{"food", "water"}, back.Supplies)
	})

	t.Run("nil supplies persist as an empty list", func(t *testing.T) {
		donationDAO, err := repo.domainToDao(domain.Donation{Amount: decimal.NewFromInt(10)})
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(donationDAO.Supplies))
	})

	t.Run("undecodable stored supplies render empty", func(t *testing.T) {
		back := repo.daoToDomain(dao.Donation{
			Supplies: datatypes.JSON([]byte(`not json`)),
		})
		assert.Equal(t, []string{}, back.Supplies)
	})
}
