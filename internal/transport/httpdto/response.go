package httpdto

// MessageResponse is the body for plain acknowledgements and for every error
// response.
type MessageResponse struct {
	Message string `json:"message"`
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

func NewErrorResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}
