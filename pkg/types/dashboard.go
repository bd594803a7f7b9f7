package types

// GrantStatusCounts is zero-filled over every status so clients always see
// the same shape, plus the total across buckets.
type GrantStatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Funded   int64 `json:"funded"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

type DashboardStats struct {
	MinistryCount         int64             `json:"ministryCount"`
	VerifiedMinistryCount int64             `json:"verifiedMinistryCount"`
	DonorCount            int64             `json:"donorCount"`
	FundCount             int64             `json:"fundCount"`
	TotalFundBalance      Money             `json:"totalFundBalance"`
	TotalFunded           Money             `json:"totalFunded"`
	TotalPending          Money             `json:"totalPending"`
	GrantCounts           GrantStatusCounts `json:"grantCounts"`
}
