package domain

import "time"

// BillingMatter is a client/matter engagement on the billing side.
// CMNumber is the firm-wide client/matter identifier. ProjectID, when set,
// links the matter to the staffing project it bills against.
type BillingMatter struct {
	ID               int64
	CMNumber         string
	Name             string
	ClientName       string
	AttorneyInCharge string
	SCA              string
	ProjectID        *int64
	FeesUSD          float64
	BilledUSD        float64
	CollectedUSD     float64
	BillingCreditUSD float64
	UBTUSD           float64
	ARUSD            float64
	BillingCreditCNY float64
	UBTCNY           float64
	FinanceComment   string
	Remarks          string
	LongStopDate     *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FeeMilestone is one tranche of a matter's fee arrangement.
// Ordinal follows the engagement letter numbering (m1, m2, ...).
type FeeMilestone struct {
	ID             int64
	MatterID       int64
	Ordinal        string
	Title          string
	Amount         float64
	Currency       string
	Completed      bool
	DueDate        *time.Time
	CompletionDate *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BillingSummary aggregates matter financials for the billing dashboard.
type BillingSummary struct {
	MatterCount       int64
	TotalFeesUSD      float64
	TotalBilledUSD    float64
	TotalCollectedUSD float64
	TotalUBTUSD       float64
	TotalARUSD        float64
	ByAttorney        []AttorneyRollup
}

// AttorneyRollup is the per-attorney slice of the billing dashboard.
type AttorneyRollup struct {
	AttorneyInCharge  string
	MatterCount       int64
	TotalBilledUSD    float64
	TotalCollectedUSD float64
	TotalUBTUSD       float64
}

// ProjectMatch is a fuzzy-name candidate when linking a matter to a project.
type ProjectMatch struct {
	ProjectID  int64
	Name       string
	Status     ProjectStatus
	Similarity float64
}
