package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal error",
	CodeUnknownError:  "An unknown error occurred",

	// Currency conversion
	CodeUnknownCurrency: "Currency is not present in the rate table",
	CodeInvalidRate:     "Currency rate must be positive",

	// Production
	CodeUnknownItemType:  "Unknown item type",
	CodeInvalidParameter: "Production parameter out of range",

	// Eclesiar API
	CodeEclesiarAPIError:    "Eclesiar API error",
	CodeEclesiarRateLimited: "Eclesiar API rate limit exceeded",
	CodeGoldNotFound:        "GOLD currency not found in countries list",
	CodeSnapshotFetchFailed: "Failed to fetch market snapshot",

	// Storage
	CodeStorageError: "Snapshot store error",
	CodeNoSnapshot:   "No snapshot stored yet",

	// Reports
	CodeExportFailed: "Failed to export report",

	// Circuit breaker errors
	CodeCircuitOpen: "Circuit breaker is open",
}
