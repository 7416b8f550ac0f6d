package response

import (
	"time"

	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type PropertyResponse struct {
	ID                uuid.UUID `json:"id"`
	HostID            uuid.UUID `json:"host_id"`
	Name              string    `json:"name"`
	Address           string    `json:"address"`
	PricePerNight     float64   `json:"price_per_night"`
	Currency          string    `json:"currency"`
	DiscountThreshold int       `json:"discount_threshold_nights"`
	CreatedAt         time.Time `json:"created_at"`
}

func FromPropertyView(v *queries.PropertyView) *PropertyResponse {
	return &PropertyResponse{
		ID:                v.ID,
		HostID:            v.HostID,
		Name:              v.Name,
		Address:           v.Address,
		PricePerNight:     v.PricePerNight,
		Currency:          v.Currency,
		DiscountThreshold: v.DiscountThreshold,
		CreatedAt:         v.CreatedAt,
	}
}

type PropertyListResponse struct {
	Items []*PropertyResponse `json:"items"`
	Total int64               `json:"total"`
}

func FromPropertyViews(views []*queries.PropertyView, total int64) *PropertyListResponse {
	items := make([]*PropertyResponse, len(views))
	for i, v := range views {
		items[i] = FromPropertyView(v)
	}
	return &PropertyListResponse{Items: items, Total: total}
}
