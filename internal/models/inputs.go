package models

// RegisterInput is the body of both registration endpoints.
// MembershipLevelID is only read for merchants; it is a pointer because
// level 0 is a valid choice.
type RegisterInput struct {
	Username          string `json:"username" validate:"required,max=150"`
	Password          string `json:"password" validate:"required,max=128"`
	Password2         string `json:"password2" validate:"required,max=128"`
	Email             string `json:"email" validate:"omitempty,email,max=254"`
	MembershipLevelID *uint  `json:"membership_level_id"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RestaurantInput carries create/update fields. Any merchant field sent by
// the client is not part of the struct and is dropped on decode.
type RestaurantInput struct {
	Name         *string `json:"name" validate:"omitempty,max=255"`
	Introduction *string `json:"introduction"`
}

type CommentInput struct {
	Comment string `json:"comment" validate:"required,max=5000"`
}

type OrderInput struct {
	PaymentMethod *string  `json:"payment_method" validate:"omitempty,max=50"`
	Amount        *float64 `json:"amount" validate:"omitempty,gte=0"`
	Status        *string  `json:"status" validate:"omitempty,max=50"`
	ServiceID     *uint    `json:"service"`
}
