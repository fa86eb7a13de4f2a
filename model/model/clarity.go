package model

import (
	"time"

	"github.com/jinzhu/gorm/dialects/postgres"
)

// Dimension is a breakdown supported by the Clarity live insights export.
type Dimension string

const (
	DimensionBrowser       Dimension = "Browser"
	DimensionDevice        Dimension = "Device"
	DimensionCountryRegion Dimension = "Country-Region"
	DimensionOS            Dimension = "OS"
	DimensionSource        Dimension = "Source"
	DimensionMedium        Dimension = "Medium"
	DimensionCampaign      Dimension = "Campaign"
	DimensionChannel       Dimension = "Channel"
	DimensionURL           Dimension = "URL"
)

var ValidDimensions = map[Dimension]bool{
	DimensionBrowser:       true,
	DimensionDevice:        true,
	DimensionCountryRegion: true,
	DimensionOS:            true,
	DimensionSource:        true,
	DimensionMedium:        true,
	DimensionCampaign:      true,
	DimensionChannel:       true,
	DimensionURL:           true,
}

const (
	DefaultDimension1 = DimensionOS
	DefaultDimension2 = DimensionDevice
	DefaultDimension3 = DimensionCountryRegion

	// ClarityDailyRequestLimit is the upstream export API allowance per day.
	ClarityDailyRequestLimit = 10
)

// ClarityRequest is one upstream export call made on RequestDate. Rows with
// a nil ResponseData are reservations for calls still in flight.
type ClarityRequest struct {
	ID           uint64          `gorm:"primary_key" json:"id"`
	RequestDate  time.Time       `gorm:"not null;index" json:"requestDate"`
	NumOfDays    int             `gorm:"not null" json:"numOfDays"`
	Dimension1   *Dimension      `gorm:"type:text" json:"dimension1"`
	Dimension2   *Dimension      `gorm:"type:text" json:"dimension2"`
	Dimension3   *Dimension      `gorm:"type:text" json:"dimension3"`
	ResponseData *postgres.Jsonb `gorm:"type:jsonb" json:"responseData"`
}

func (ClarityRequest) TableName() string {
	return "clarity_requests"
}

// IsPending is true for a reservation whose upstream call has not completed.
func (request *ClarityRequest) IsPending() bool {
	return request.ResponseData == nil
}

// ClarityParams are the request parameters a cached row must match exactly.
type ClarityParams struct {
	NumOfDays  int
	Dimension1 *Dimension
	Dimension2 *Dimension
	Dimension3 *Dimension
}

// Matches compares dimensions by value; a nil dimension only matches nil.
func (params ClarityParams) Matches(request *ClarityRequest) bool {
	return params.NumOfDays == request.NumOfDays &&
		sameDimension(params.Dimension1, request.Dimension1) &&
		sameDimension(params.Dimension2, request.Dimension2) &&
		sameDimension(params.Dimension3, request.Dimension3)
}

func sameDimension(a, b *Dimension) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Dimensions returns the three dimension slots in order. A nil slot asks
// for no breakdown on that slot.
func (params ClarityParams) Dimensions() [3]*Dimension {
	return [3]*Dimension{params.Dimension1, params.Dimension2, params.Dimension3}
}

// ClarityInsightsInput is the input of clarity.project-live-insights.
// Dimension keys missing from the payload take the defaults, an explicit
// null means no dimension.
type ClarityInsightsInput struct {
	NumOfDays  int        `json:"numOfDays" validate:"required,oneof=1 2 3"`
	Dimension1 *Dimension `json:"dimension1" validate:"omitempty,oneof=Browser Device Country-Region OS Source Medium Campaign Channel URL"`
	Dimension2 *Dimension `json:"dimension2" validate:"omitempty,oneof=Browser Device Country-Region OS Source Medium Campaign Channel URL"`
	Dimension3 *Dimension `json:"dimension3" validate:"omitempty,oneof=Browser Device Country-Region OS Source Medium Campaign Channel URL"`
}

func (input *ClarityInsightsInput) SetDefaults() {
	input.Dimension1 = DimensionPtr(DefaultDimension1)
	input.Dimension2 = DimensionPtr(DefaultDimension2)
	input.Dimension3 = DimensionPtr(DefaultDimension3)
}

func (input *ClarityInsightsInput) Params() ClarityParams {
	return ClarityParams{
		NumOfDays:  input.NumOfDays,
		Dimension1: input.Dimension1,
		Dimension2: input.Dimension2,
		Dimension3: input.Dimension3,
	}
}

func DimensionPtr(d Dimension) *Dimension {
	return &d
}

// QuotaUsage reports calls made against a daily allowance.
type QuotaUsage struct {
	Used  int `json:"used"`
	Limit int `json:"limit"`
}
