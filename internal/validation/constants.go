package validation

const (
	MaxUsernameLength = 150
	MaxPasswordLength = 128

	// Order amounts are stored as decimal(10,1).
	AmountMaxDigits     = 10
	AmountDecimalPlaces = 1

	MsgRequired = "This field is required."
	MsgBlank    = "This field may not be blank."
)
