package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"book_reviews/internal/domain"
)

// Every response shares one envelope: success tells clients whether data or
// errors/message carries the payload. Pagination rides alongside data on
// list endpoints.
type envelope struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message,omitempty"`
	Data       any          `json:"data,omitempty"`
	Errors     []fieldError `json:"errors,omitempty"`
	Pagination *pagination  `json:"pagination,omitempty"`
}

type fieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type pagination struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	TotalItems int `json:"totalItems"`
}

func newPagination(page, limit, totalItems int) *pagination {
	total := totalItems / limit
	if totalItems%limit != 0 {
		total++
	}
	return &pagination{Current: page, Total: total, TotalItems: totalItems}
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writePage(w http.ResponseWriter, data any, pg *pagination) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data, Pagination: pg})
}

func writeFail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

func writeFieldErrors(w http.ResponseWriter, errs []fieldError) {
	writeJSON(w, http.StatusBadRequest, envelope{Success: false, Errors: errs})
}

// writeDomainErr maps service errors onto statuses. Anything unmapped is a
// 500 with a generic message; the cause is logged, not leaked.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeFail(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, domain.ErrDuplicateReview):
		writeFail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidRequest):
		writeFail(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, domain.ErrEmailTaken):
		writeFail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeFail(w, http.StatusUnauthorized, err.Error())
	default:
		log.Error().Err(err).Msg("unhandled service error")
		writeFail(w, http.StatusInternalServerError, "internal server error")
	}
}
