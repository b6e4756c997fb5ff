package httpserver

import (
	"net/http"

	"book_reviews/internal/domain"
)

func (h *Handlers) createBook(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}
	b, err := h.Books.Create(r.Context(), domain.Book{
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, toBookJSON(b))
}

func (h *Handlers) listBooks(w http.ResponseWriter, r *http.Request) {
	pg := parsePage(r)
	page, err := h.Books.List(r.Context(), domain.BooksQuery{
		Author:    r.URL.Query().Get("author"),
		Genre:     r.URL.Query().Get("genre"),
		PageQuery: pg,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writePage(w, toBookListJSON(page.Items), newPagination(pg.Page, pg.Limit, page.TotalItems))
}

func (h *Handlers) searchBooks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeFieldErrors(w, []fieldError{{Field: "q", Message: "is required"}})
		return
	}
	pg := parsePage(r)
	page, err := h.Books.Search(r.Context(), domain.SearchQuery{Q: q, PageQuery: pg})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writePage(w, toBookListJSON(page.Items), newPagination(pg.Page, pg.Limit, page.TotalItems))
}

func (h *Handlers) getBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return
	}
	pg := parsePage(r)
	detail, err := h.Books.GetWithReviews(r.Context(), id, pg)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	body := bookDetailJSON{bookJSON: toBookJSON(detail.Book), Reviews: toReviewListJSON(detail.Reviews)}
	// pagination covers the embedded review page, sized by the stored total
	writePage(w, body, newPagination(pg.Page, pg.Limit, detail.Book.TotalReviews))
}
