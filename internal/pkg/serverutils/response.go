package serverutils

// Response is the standard success envelope: {success, data}.
type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrResponse is the standard failure envelope: {success, error}.
type ErrResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(message string) ErrResponse {
	return ErrResponse{
		Success: false,
		Error:   message,
	}
}
