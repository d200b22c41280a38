package models

import "github.com/joshua-takyi/skillswap/internal/apperrors"

type ApiResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      string      `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Total     int         `json:"total,omitempty"`
}

func SuccessResponse(data interface{}, message string) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
}

func ErrorResponse(err string) ApiResponse {
	return ApiResponse{
		Success: false,
		Error:   err,
	}
}

// AppErrorResponse renders an application error for the client. Wrapped
// causes stay server side.
func AppErrorResponse(err *apperrors.AppError, requestID string) ApiResponse {
	return ApiResponse{
		Success:   false,
		Error:     err.Message,
		Code:      string(err.Code),
		RequestID: requestID,
	}
}

func ListResponse(data interface{}, total int) ApiResponse {
	return ApiResponse{
		Success: true,
		Data:    data,
		Total:   total,
	}
}
