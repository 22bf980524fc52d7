package request

import "github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"

// MenuItemRequest creates or updates a menu item. Service is required on
// create and ignored on update.
type MenuItemRequest struct {
	Service   *enum.Service `json:"service"`
	Name      string        `json:"name" binding:"required,max=255"`
	Price     int64         `json:"price" binding:"min=0"`
	ShotPrice *int64        `json:"shot_price" binding:"omitempty,min=0"`
	Available *bool         `json:"available"`
}

// TaxRateRequest sets the tax percent of one service
type TaxRateRequest struct {
	Percent *float64 `json:"percent" binding:"required,min=0,max=100"`
}
