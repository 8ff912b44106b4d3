package handlers

// IDResponse is returned when a resource is created.
type IDResponse struct {
	ID string `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name IDResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"Growing unit 123e4567-e89b-12d3-a456-426614174000 is at full capacity"`
} // @name ErrorResponse
