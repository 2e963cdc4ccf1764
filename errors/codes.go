package errors

// ErrorCode identifies an error category in API responses.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_UNAUTHENTICATED  ErrorCode = 1004
	ErrorCode_FORBIDDEN        ErrorCode = 1005

	ErrorCode_CONFIGURATION ErrorCode = 2000
	ErrorCode_VALIDATION    ErrorCode = 2001
	ErrorCode_RATE_LIMITED  ErrorCode = 2002

	ErrorCode_STORE_UNAVAILABLE ErrorCode = 3000
	ErrorCode_LLM_UNAVAILABLE   ErrorCode = 3001
	ErrorCode_TRANSCRIPTION     ErrorCode = 3002
	ErrorCode_EXTRACTION        ErrorCode = 3003

	ErrorCode_AUTH_INVALID_TOKEN       ErrorCode = 4000
	ErrorCode_AUTH_TOKEN_EXPIRED       ErrorCode = 4001
	ErrorCode_AUTH_INVALID_CREDENTIALS ErrorCode = 4002
	ErrorCode_AUTH_ACCOUNT_NOT_ACTIVE  ErrorCode = 4003
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                  "OK",
	ErrorCode_INTERNAL:                 "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:         "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:           "ALREADY_EXISTS",
	ErrorCode_UNAUTHENTICATED:          "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                "FORBIDDEN",
	ErrorCode_CONFIGURATION:            "CONFIGURATION",
	ErrorCode_VALIDATION:               "VALIDATION",
	ErrorCode_RATE_LIMITED:             "RATE_LIMITED",
	ErrorCode_STORE_UNAVAILABLE:        "STORE_UNAVAILABLE",
	ErrorCode_LLM_UNAVAILABLE:          "LLM_UNAVAILABLE",
	ErrorCode_TRANSCRIPTION:            "TRANSCRIPTION",
	ErrorCode_EXTRACTION:               "EXTRACTION",
	ErrorCode_AUTH_INVALID_TOKEN:       "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:       "AUTH_TOKEN_EXPIRED",
	ErrorCode_AUTH_INVALID_CREDENTIALS: "AUTH_INVALID_CREDENTIALS",
	ErrorCode_AUTH_ACCOUNT_NOT_ACTIVE:  "AUTH_ACCOUNT_NOT_ACTIVE",
}

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
