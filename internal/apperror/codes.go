package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Analysis core error codes
const (
	// Currency conversion
	CodeUnknownCurrency Code = "UNKNOWN_CURRENCY"
	CodeInvalidRate     Code = "INVALID_RATE"

	// Production
	CodeUnknownItemType  Code = "UNKNOWN_ITEM_TYPE"
	CodeInvalidParameter Code = "INVALID_PARAMETER"
)

// Ingestion and reporting error codes
const (
	// Eclesiar API
	CodeEclesiarAPIError    Code = "ECLESIAR_API_ERROR"
	CodeEclesiarRateLimited Code = "ECLESIAR_RATE_LIMITED"
	CodeGoldNotFound        Code = "GOLD_NOT_FOUND"
	CodeSnapshotFetchFailed Code = "SNAPSHOT_FETCH_FAILED"

	// Storage
	CodeStorageError Code = "STORAGE_ERROR"
	CodeNoSnapshot   Code = "NO_SNAPSHOT"

	// Reports
	CodeExportFailed Code = "EXPORT_FAILED"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
