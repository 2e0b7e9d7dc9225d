package models

// IdentityKind is the profile capability an authenticated account carries.
type IdentityKind string

const (
	KindCustomer     IdentityKind = "customer"
	KindMerchant     IdentityKind = "merchant"
	KindUnaffiliated IdentityKind = "unaffiliated"
)

// Identity is the resolved caller: the account and at most one profile.
// Profile presence is a capability check, not an error path.
type Identity struct {
	Account  Account
	customer *CustomerProfile
	merchant *MerchantProfile
}

func NewCustomerIdentity(account Account, profile *CustomerProfile) *Identity {
	return &Identity{Account: account, customer: profile}
}

func NewMerchantIdentity(account Account, profile *MerchantProfile) *Identity {
	return &Identity{Account: account, merchant: profile}
}

func NewUnaffiliatedIdentity(account Account) *Identity {
	return &Identity{Account: account}
}

func (i *Identity) Kind() IdentityKind {
	switch {
	case i.merchant != nil:
		return KindMerchant
	case i.customer != nil:
		return KindCustomer
	default:
		return KindUnaffiliated
	}
}

// Merchant reports whether the caller has a merchant profile.
func (i *Identity) Merchant() (*MerchantProfile, bool) {
	return i.merchant, i.merchant != nil
}

// Customer reports whether the caller has a customer profile.
func (i *Identity) Customer() (*CustomerProfile, bool) {
	return i.customer, i.customer != nil
}

type IdentityResponse struct {
	AccountResponse
	Role IdentityKind `json:"role"`
}

func (i *Identity) Response() IdentityResponse {
	return IdentityResponse{AccountResponse: i.Account.Public(), Role: i.Kind()}
}
