package utils

// Application constants
const (
	// Application name
	AppName = "PriceSphere"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Default database host
	DefaultDBHost = "localhost"

	// Default database port
	DefaultDBPort = "5432"

	// Default database name
	DefaultDBName = "pricesphere"

	// Default database user
	DefaultDBUser = "postgres"

	// Default SMTP port
	DefaultSMTPPort = 587

	// Default storage file for the file backend
	DefaultStorageFile = "pricing-storage.json"

	// Admin JWT token lifetime in hours
	AdminTokenTTLHours = 24

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100
)

// Error messages
const (
	ErrInvalidCredentials = "Invalid email or password"
	ErrInvalidToken       = "Invalid or expired token"
	ErrUnauthorized       = "Please login for access"
	ErrInvalidRuleKind    = "Unknown rule kind"
	ErrInvalidPagination  = "Invalid pagination parameters"
	ErrInternalServer     = "Internal server error"
)

// Success messages
const (
	MsgLoginSuccess   = "Login successful"
	MsgCreateSuccess  = "Created successfully"
	MsgUpdateSuccess  = "Updated successfully"
	MsgDeleteSuccess  = "Deleted successfully"
	MsgToggleSuccess  = "Toggled successfully"
	MsgCalculated     = "Price calculated successfully"
	MsgSheetEmailSent = "Pricing sheet sent successfully"
)
