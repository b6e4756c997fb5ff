package httpserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"book_reviews/internal/domain"
)

// logIfStale swallows the aggregate-staleness signal: the review mutation
// itself succeeded, the book's derived fields just lag until the next
// recompute. Returns true when err is anything other than that signal.
func logIfStale(err error) bool {
	if err == nil {
		return false
	}
	var sync *domain.AggregateSyncError
	if errors.As(err, &sync) {
		log.Error().Err(sync.Err).Int64("book_id", sync.BookID).Msg("book rating recompute failed")
		return false
	}
	return true
}

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	u, ok := caller(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	bookID, err := parseID(r, "bookId")
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	var req reviewRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}
	rev, err := h.Reviews.Create(r.Context(), u.ID, bookID, req.Rating, req.Comment)
	if logIfStale(err) {
		writeDomainErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, toReviewJSON(rev))
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	u, ok := caller(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(r, "id")
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	var req reviewRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}
	rev, err := h.Reviews.Update(r.Context(), id, u.ID, req.Rating, req.Comment)
	if logIfStale(err) {
		writeDomainErr(w, err)
		return
	}
	writeData(w, http.StatusOK, toReviewJSON(rev))
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	u, ok := caller(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, err := parseID(r, "id")
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Reviews.Delete(r.Context(), id, u.ID); logIfStale(err) {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "review deleted"})
}
