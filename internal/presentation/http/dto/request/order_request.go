package request

import "github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"

// CartLineRequest is one cart line. ItemID is an item key, either a plain
// menu item id or "<id>:<variant>" for Bar shots.
type CartLineRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=999"`
}

// QuoteRequest prices a cart without placing it
type QuoteRequest struct {
	Service *enum.Service     `json:"service" binding:"required"`
	Items   []CartLineRequest `json:"items" binding:"required,dive"`
}

// CreateOrderRequest places a cart for a checked-in guest
type CreateOrderRequest struct {
	CustomerID    string              `json:"customer_id" binding:"required,uuid"`
	Service       *enum.Service       `json:"service" binding:"required"`
	Items         []CartLineRequest   `json:"items" binding:"required,dive"`
	PaymentMethod *enum.PaymentMethod `json:"payment_method" binding:"required"`
	TableNo       string              `json:"table_no" binding:"max=20"`
	RoomNo        string              `json:"room_no" binding:"max=20"`
}

// SettleOrderRequest settles a pay-later order
type SettleOrderRequest struct {
	PaymentMethod *enum.PaymentMethod `json:"payment_method" binding:"required"`
}
