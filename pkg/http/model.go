package http

// ErrorBody is the JSON shape of every error the API returns.
type ErrorBody struct {
	Error string `json:"error" example:"Please enter at least 60 past prices."`
}

// StatusBody is the liveness payload.
type StatusBody struct {
	Status string `json:"status" example:"ok"`
}
