package entity

import (
	"time"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
)

// TaxRate is the tax percent applied to every order of a service
type TaxRate struct {
	Service   enum.Service `gorm:"primaryKey;autoIncrement:false" json:"service"`
	Percent   float64      `gorm:"not null;default:0" json:"percent"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TableName returns the table name for the TaxRate model
func (TaxRate) TableName() string {
	return "tax_rates"
}

// DefaultTaxRates are seeded when the table is empty.
func DefaultTaxRates() []TaxRate {
	percents := map[enum.Service]float64{
		enum.ServiceBar:         18,
		enum.ServiceRestaurant:  5,
		enum.ServiceRoomService: 5,
	}
	rates := make([]TaxRate, 0, len(enum.AllServices()))
	for _, s := range enum.AllServices() {
		rates = append(rates, TaxRate{Service: s, Percent: percents[s]})
	}
	return rates
}
