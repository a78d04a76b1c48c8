package apperror

// messages maps error codes to human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid data format",
	CodeInvalidState:    "Invalid state for this operation",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation error",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External service errors
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timeout",
	CodeServiceUnavailable:   "Service temporarily unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System errors
	CodeInternalError: "Internal server error",
	CodeUnknownError:  "An unknown error occurred",

	// Blockchain RPC errors
	CodeEthereumConnectionFailed: "Failed to connect to RPC node",
	CodeEthereumRPCError:         "RPC call failed",
	CodeBlockNotFound:            "Block not found",

	// Subgraph errors
	CodeSubgraphRequestFailed:   "Subgraph request failed",
	CodeSubgraphInvalidResponse: "Subgraph returned an invalid response",
	CodeSubgraphEmptyResult:     "Subgraph returned no pair day data",
	CodeUnknownAMM:              "Unknown AMM",

	// Snapshot / pool parameters
	CodeInvalidSnapshot:    "Invalid pool snapshot",
	CodeInvalidPoolParams:  "Invalid pool parameters",
	CodeUnknownStakingPool: "Staking pool not found in registry",
	CodePoolStateMissing:   "No on-chain state for staking pool",

	// History storage
	CodeStorageFailed: "Failed to persist yield history",

	// Circuit breaker errors
	CodeCircuitOpen: "Circuit breaker is open",
}
