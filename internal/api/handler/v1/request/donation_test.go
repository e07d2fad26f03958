package request

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplyListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []string
	}{
		{"array", `{"supplies": ["food", "water"]}`, []string{"food", "water"}},
		{"bare string", `{"supplies": "blankets"}`, []string{"blankets"}},
		{"null", `{"supplies": null}`, []string{}},
		{"empty array", `{"supplies": []}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req RecordDonationRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, SupplyList(tt.want), req.Supplies)
		})
	}

	t.Run("rejects a number", func(t *testing.T) {
		var req RecordDonationRequest
		assert.Error(t, json.Unmarshal([]byte(`{"supplies": 5}`), &req))
	})

	t.Run("absent stays nil until the service normalizes it", func(t *testing.T) {
		var req RecordDonationRequest
		require.NoError(t, json.Unmarshal([]byte(`{"amount": "10", "campaign_id": 1}`), &req))
		assert.Nil(t, req.Supplies)
	})
}

func TestRecordDonationRequestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := RecordDonationRequest{
			Amount:     decimal.NewFromInt(250),
			Supplies:   SupplyList{"food"},
			CampaignID: 1,
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("zero amount", func(t *testing.T) {
		req := RecordDonationRequest{Amount: decimal.Zero, CampaignID: 1}
		assert.ErrorIs(t, req.Validate(), errNonPositiveAmount)
	})

	t.Run("negative amount", func(t *testing.T) {
		req := RecordDonationRequest{Amount: decimal.NewFromInt(-5), CampaignID: 1}
		assert.ErrorIs(t, req.Validate(), errNonPositiveAmount)
	})

	t.Run("missing campaign", func(t *testing.T) {
		req := RecordDonationRequest{Amount: decimal.NewFromInt(10)}
		assert.Error(t, req.Validate())
	})
}
