package controllers

// ErrorKind classifies a submission failure for the API response body. Only
// the kind is serialized; raw store errors stay in the logs.
type ErrorKind string

const (
	KindInvalidPayload   ErrorKind = "invalid_payload"
	KindUnknownPost      ErrorKind = "unknown_post"
	KindStoreUnavailable ErrorKind = "store_unavailable"
)

// apiError is the safe error payload embedded in failure responses.
type apiError struct {
	Kind ErrorKind `json:"kind"`
}

// messageResponse is the envelope of every createComment response.
type messageResponse struct {
	Message string    `json:"message"`
	Error   *apiError `json:"error,omitempty"`
}
