package validation

import "marketplace/internal/models"

// Registration validates the fields shared by customer and merchant sign-up.
func (v *Validator) Registration(in *models.RegisterInput) {
	v.Struct(in)
	v.Username("username", in.Username)
	v.PasswordsMatch(in.Password, in.Password2)
}

// MerchantRegistration also requires a membership level choice.
func (v *Validator) MerchantRegistration(in *models.RegisterInput) {
	v.Registration(in)
	v.Check(in.MembershipLevelID != nil, "membership_level_id", MsgRequired)
}

// Restaurant validates a create (partial=false) or patch (partial=true) body.
func (v *Validator) Restaurant(in *models.RestaurantInput, partial bool) {
	v.Struct(in)
	v.NotBlank("name", in.Name)
	if !partial {
		v.Present(in.Name != nil, "name")
	}
}

func (v *Validator) Comment(in *models.CommentInput) {
	v.Struct(in)
	v.NotBlank("comment", &in.Comment)
}

func (v *Validator) Order(in *models.OrderInput, partial bool) {
	v.Struct(in)
	v.NotBlank("payment_method", in.PaymentMethod)
	v.NotBlank("status", in.Status)
	if in.Amount != nil {
		v.Decimal("amount", *in.Amount, AmountMaxDigits, AmountDecimalPlaces)
	}
	if !partial {
		v.Present(in.PaymentMethod != nil, "payment_method")
		v.Present(in.Amount != nil, "amount")
		v.Present(in.Status != nil, "status")
	}
}
