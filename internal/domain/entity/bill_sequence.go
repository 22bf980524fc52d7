package entity

import "time"

// BillSequence holds the last bill number issued for a prefix
type BillSequence struct {
	Prefix     string    `gorm:"size:20;primaryKey" json:"prefix"`
	LastIssued int64     `gorm:"not null;default:0" json:"last_issued"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the table name for the BillSequence model
func (BillSequence) TableName() string {
	return "bill_sequences"
}
