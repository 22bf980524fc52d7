package request

// CreateCustomerRequest registers a guest and checks them in
type CreateCustomerRequest struct {
	Name   string  `json:"name" binding:"required,max=255"`
	Phone  string  `json:"phone" binding:"required,max=20"`
	Email  *string `json:"email" binding:"omitempty,email"`
	RoomNo *string `json:"room_no" binding:"omitempty,max=20"`
}

// CheckInRequest starts a new visit for a returning guest
type CheckInRequest struct {
	RoomNo *string `json:"room_no" binding:"omitempty,max=20"`
}
