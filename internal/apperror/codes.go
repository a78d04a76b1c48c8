package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeInvalidState    Code = "INVALID_STATE"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Yield-specific error codes
const (
	// Blockchain RPC errors
	CodeEthereumConnectionFailed Code = "ETHEREUM_CONNECTION_FAILED"
	CodeEthereumRPCError         Code = "ETHEREUM_RPC_ERROR"
	CodeBlockNotFound            Code = "BLOCK_NOT_FOUND"

	// Subgraph errors
	CodeSubgraphRequestFailed   Code = "SUBGRAPH_REQUEST_FAILED"
	CodeSubgraphInvalidResponse Code = "SUBGRAPH_INVALID_RESPONSE"
	CodeSubgraphEmptyResult     Code = "SUBGRAPH_EMPTY_RESULT"
	CodeUnknownAMM              Code = "UNKNOWN_AMM"

	// Snapshot / pool parameters
	CodeInvalidSnapshot    Code = "INVALID_SNAPSHOT"
	CodeInvalidPoolParams  Code = "INVALID_POOL_PARAMS"
	CodeUnknownStakingPool Code = "UNKNOWN_STAKING_POOL"
	CodePoolStateMissing   Code = "POOL_STATE_MISSING"

	// History storage
	CodeStorageFailed Code = "STORAGE_FAILED"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
