package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Paginated wraps list payloads with their total count.
type Paginated struct {
	Items any `json:"items"`
	Total int `json:"total"`
}
