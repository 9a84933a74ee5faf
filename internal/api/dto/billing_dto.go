package dto

import "time"

// MatterRequest payload for create/update.
type MatterRequest struct {
	CMNumber         string     `json:"cm_number"`
	Name             string     `json:"name"`
	ClientName       string     `json:"client_name"`
	AttorneyInCharge string     `json:"attorney_in_charge"`
	SCA              string     `json:"sca"`
	FeesUSD          float64    `json:"fees_usd"`
	BilledUSD        float64    `json:"billed_usd"`
	CollectedUSD     float64    `json:"collected_usd"`
	BillingCreditUSD float64    `json:"billing_credit_usd"`
	UBTUSD           float64    `json:"ubt_usd"`
	ARUSD            float64    `json:"ar_usd"`
	BillingCreditCNY float64    `json:"billing_credit_cny"`
	UBTCNY           float64    `json:"ubt_cny"`
	FinanceComment   string     `json:"finance_comment"`
	Remarks          string     `json:"remarks"`
	LongStopDate     *time.Time `json:"long_stop_date"`
}

// MatterResponse shape returned to clients.
type MatterResponse struct {
	ID               int64      `json:"id"`
	CMNumber         string     `json:"cm_number"`
	Name             string     `json:"name"`
	ClientName       string     `json:"client_name,omitempty"`
	AttorneyInCharge string     `json:"attorney_in_charge,omitempty"`
	SCA              string     `json:"sca,omitempty"`
	ProjectID        *int64     `json:"project_id,omitempty"`
	FeesUSD          float64    `json:"fees_usd"`
	BilledUSD        float64    `json:"billed_usd"`
	CollectedUSD     float64    `json:"collected_usd"`
	BillingCreditUSD float64    `json:"billing_credit_usd"`
	UBTUSD           float64    `json:"ubt_usd"`
	ARUSD            float64    `json:"ar_usd"`
	BillingCreditCNY float64    `json:"billing_credit_cny"`
	UBTCNY           float64    `json:"ubt_cny"`
	FinanceComment   string     `json:"finance_comment,omitempty"`
	Remarks          string     `json:"remarks,omitempty"`
	LongStopDate     *time.Time `json:"long_stop_date,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// MilestoneRequest payload for milestone create/update. Ordinal only
// matters on create and follows the engagement letter (m1, m2, ...).
type MilestoneRequest struct {
	Ordinal        string     `json:"ordinal,omitempty"`
	Title          string     `json:"title"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	Completed      bool       `json:"completed"`
	DueDate        *time.Time `json:"due_date"`
	CompletionDate *time.Time `json:"completion_date"`
}

// MilestoneResponse shape returned to clients.
type MilestoneResponse struct {
	ID             int64      `json:"id"`
	MatterID       int64      `json:"matter_id"`
	Ordinal        string     `json:"ordinal"`
	Title          string     `json:"title"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	Completed      bool       `json:"completed"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
}

// LinkProjectRequest payload for linking a matter to a project.
type LinkProjectRequest struct {
	ProjectID int64 `json:"project_id"`
}

// ProjectMatchResponse is one fuzzy-match candidate.
type ProjectMatchResponse struct {
	ProjectID  int64   `json:"project_id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Similarity float64 `json:"similarity"`
}
