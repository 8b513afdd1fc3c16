package utils

// Application constants
const (
	// Application name
	AppName = "VietShop"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Free shipping threshold in VND; orders below it pay FlatShippingFee
	FreeShippingThreshold = 500000.0

	// Flat shipping fee in VND
	FlatShippingFee = 30000.0

	// Maximum quantity of one product per cart line
	MaxCartQuantity = 10

	// Maximum file size for uploads (5MB)
	MaxFileSize = 5 * 1024 * 1024

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8
)
