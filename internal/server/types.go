package server

// InsertRequest is the body of POST /v1/keys
type InsertRequest struct {
	Key   *int64 `json:"key" binding:"required"`
	Value *int64 `json:"value" binding:"required"`
}

// UpdateRequest is the body of PUT /v1/keys/:key
type UpdateRequest struct {
	Value *int64 `json:"value" binding:"required"`
}

// KeyResponse answers GET /v1/keys/:key. Value is omitted unless Status is "found".
type KeyResponse struct {
	Key    int64  `json:"key"`
	Status string `json:"status"`
	Value  *int64 `json:"value,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
