package domain

import "github.com/shopspring/decimal"

// DonorRanking is one row of the top-donor leaderboard.
type DonorRanking struct {
	DonorName   string          `json:"donor_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// PlatformStats aggregates the whole ledger, including donations to
// campaigns that have since been soft-deleted. Only ActiveCampaignCount
// filters on the soft-delete flag.
type PlatformStats struct {
	TotalDonated        decimal.Decimal `json:"total_donated"`
	TotalSupplyUnits    int64           `json:"total_supply_units"`
	DistinctDonors      int64           `json:"distinct_donors"`
	ActiveCampaignCount int64           `json:"active_campaign_count"`
}
