package property

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNegativeRate = errors.New("price per night cannot be negative")

// DefaultDiscountThreshold applies when a property does not configure its own
// long-stay threshold.
const DefaultDiscountThreshold = 7

type Property struct {
	id                uuid.UUID
	hostID            uuid.UUID
	name              string
	address           string
	pricePerNight     float64
	currency          string
	discountThreshold int
	createdAt         time.Time
	updatedAt         time.Time
}

func NewProperty(id, hostID uuid.UUID, name, address string, pricePerNight float64, currency string, discountThreshold int) (*Property, error) {
	if pricePerNight < 0 {
		return nil, ErrNegativeRate
	}
	if currency == "" {
		currency = "USD"
	}
	return &Property{
		id:                id,
		hostID:            hostID,
		name:              name,
		address:           address,
		pricePerNight:     pricePerNight,
		currency:          currency,
		discountThreshold: discountThreshold,
	}, nil
}

// DiscountThreshold returns the configured long-stay threshold, falling back
// to the default when unset.
func (p *Property) DiscountThreshold() int {
	if p.discountThreshold <= 0 {
		return DefaultDiscountThreshold
	}
	return p.discountThreshold
}

func (p *Property) ID() uuid.UUID          { return p.id }
func (p *Property) HostID() uuid.UUID      { return p.hostID }
func (p *Property) Name() string           { return p.name }
func (p *Property) Address() string        { return p.address }
func (p *Property) PricePerNight() float64 { return p.pricePerNight }
func (p *Property) Currency() string       { return p.currency }
func (p *Property) CreatedAt() time.Time   { return p.createdAt }
func (p *Property) UpdatedAt() time.Time   { return p.updatedAt }
