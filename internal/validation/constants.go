package validation

const (
	// Amount limits
	MinTransactionAmount = 0.01
	MaxTransactionAmount = 1000000.00

	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// String lengths
	MaxDescriptionLength = 500
	MaxReferenceLength   = 100
	MaxAccountLength     = 100

	// Wallet PIN format
	PinLength = 4
)
