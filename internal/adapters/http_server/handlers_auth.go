package httpserver

import "net/http"

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}
	u, err := h.Auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeData(w, http.StatusCreated, toUserJSON(u))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if errs := decodeValid(r, &req); errs != nil {
		writeFieldErrors(w, errs)
		return
	}
	tok, u, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeData(w, http.StatusOK, loginJSON{Token: tok, User: toUserJSON(u)})
}
