package leads

import (
	"strings"
	"time"
)

// Requirement categories a lead can express.
const (
	RequirementAdvertise     = "advertise"
	RequirementListInventory = "list-inventory"
)

// Lead is a persisted inquiry from the public site. StationName and AdFormat
// are snapshots taken at submission time; they are never updated when master
// data changes.
type Lead struct {
	ID           int64     `json:"id"`
	Requirement  string    `json:"requirement"`
	BuyerType    string    `json:"buyerType,omitempty"`
	Familiarity  string    `json:"familiarity,omitempty"`
	Company      string    `json:"company,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	StationID    *int64    `json:"stationId,omitempty"`
	StationName  string    `json:"stationName,omitempty"`
	AdFormat     string    `json:"adFormat,omitempty"`
	BudgetBand   string    `json:"budgetBand,omitempty"`
	CampaignGoal string    `json:"campaignGoal,omitempty"`
	Audience     string    `json:"audience,omitempty"`
	Timeline     string    `json:"timeline,omitempty"`
	Message      string    `json:"message,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateLeadRequest is the public form payload.
type CreateLeadRequest struct {
	Requirement  string `json:"requirement"`
	BuyerType    string `json:"buyerType"`
	Familiarity  string `json:"familiarity"`
	Company      string `json:"company"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	StationID    *int64 `json:"stationId"`
	ProductID    *int64 `json:"productId"`
	BudgetBand   string `json:"budgetBand"`
	CampaignGoal string `json:"campaignGoal"`
	Audience     string `json:"audience"`
	Timeline     string `json:"timeline"`
	Message      string `json:"message"`
}

// Validate checks the required contact fields and the requirement category.
func (r *CreateLeadRequest) Validate() error {
	switch strings.TrimSpace(r.Requirement) {
	case "":
		return ErrRequirementRequired
	case RequirementAdvertise, RequirementListInventory:
	default:
		return ErrRequirementUnknown
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrEmailRequired
	}
	if strings.TrimSpace(r.Phone) == "" {
		return ErrPhoneRequired
	}
	return nil
}
