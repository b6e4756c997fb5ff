package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"book_reviews/internal/adapters/token"
	"book_reviews/internal/app"
)

type Handlers struct {
	Auth    *app.AuthService
	Books   *app.BookService
	Reviews *app.ReviewService
	Tokens  *token.Manager
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)

		r.Get("/books", h.listBooks)
		r.Get("/books/search", h.searchBooks)
		r.Get("/books/{id}", h.getBook)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(h.Tokens))
			r.Post("/books", h.createBook)
			r.Post("/reviews/{bookId}", h.createReview)
			r.Put("/reviews/{id}", h.updateReview)
			r.Delete("/reviews/{id}", h.deleteReview)
		})
	})
}
