package http

import (
	"net/http"
)

type RootHandler struct{}

// ServeHTTP answers the root banner.
//
//	@Summary		Service banner
//	@Description	Plain-text confirmation that the server is up.
//	@Tags			System
//	@Produce		plain
//	@Success		200	{string}	string	"The server is running."
//	@Router			/ [get].
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("The server is running."))
}
