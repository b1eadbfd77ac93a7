package dto

// Response is the uniform envelope for every API reply.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// OK wraps successful payload.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// OKMessage wraps a successful reply that carries only a message.
func OKMessage(message string) Response {
	return Response{Success: true, Message: message}
}

// Fail wraps an error message.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}
