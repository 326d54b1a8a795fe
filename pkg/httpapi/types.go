package httpapi

import (
	"github.com/bastiangx/wordfix/pkg/corrector"
	"github.com/bastiangx/wordfix/pkg/dictionary"
)

// CorrectRequest is the body of POST /v1/correct.
type CorrectRequest struct {
	Word string `json:"word" binding:"required"`
}

// BatchRequest is the body of POST /v1/correct/batch.
type BatchRequest struct {
	Words []string `json:"words" binding:"required"`
}

// BatchResponse holds one result per requested word, in request order.
type BatchResponse struct {
	Results []corrector.Result `json:"results"`
	Count   int                `json:"count"`
}

// HealthResponse is returned by GET /v1/health.
type HealthResponse struct {
	Status     string         `json:"status"`
	Cache      map[string]int `json:"cache,omitempty"`
	Dictionary map[string]int `json:"dictionary,omitempty"`
}

// CompleteResponse is returned by GET /v1/complete.
type CompleteResponse struct {
	Prefix string             `json:"prefix"`
	Words  []dictionary.Entry `json:"words"`
	Count  int                `json:"count"`
}

// ErrorResponse is returned for every 4xx/5xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
