package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code, message string, cause ...error) *AppError {
	var c error
	if len(cause) > 0 {
		c = cause[0]
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   c,
	}
}

var (
	ErrConfigInvalid = &AppError{Code: "CONFIG_001", Message: "invalid configuration"}
	ErrAPIKeyMissing = &AppError{Code: "CONFIG_002", Message: "ANTHROPIC_API_KEY not set"}
	ErrDataDir       = &AppError{Code: "CONFIG_003", Message: "could not resolve data directory"}

	ErrModelRequest     = &AppError{Code: "LLM_001", Message: "model request failed"}
	ErrModelStatus      = &AppError{Code: "LLM_002", Message: "model returned non-success status"}
	ErrModelResponse    = &AppError{Code: "LLM_003", Message: "unexpected model response format"}
	ErrModelUnavailable = &AppError{Code: "LLM_004", Message: "model client not configured"}

	ErrToolNotFound  = &AppError{Code: "TOOL_001", Message: "tool not registered"}
	ErrToolExecution = &AppError{Code: "TOOL_002", Message: "tool execution failed"}

	ErrMemoryLoad = &AppError{Code: "MEMORY_001", Message: "could not load conversation memory"}
	ErrMemorySave = &AppError{Code: "MEMORY_002", Message: "could not save conversation memory"}

	ErrStorageRead  = &AppError{Code: "STORAGE_001", Message: "could not read day log"}
	ErrStorageWrite = &AppError{Code: "STORAGE_002", Message: "could not write day log"}
)

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func GetCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}
