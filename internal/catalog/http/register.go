package http

import (
	"net/http"
	"strings"

	"github.com/aklatan/buklat/internal/catalog/service"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/aklatan/buklat/pkg/httpx"
	"github.com/aklatan/buklat/pkg/slogx"
)

type RegisterHandler struct {
	AuthService *service.Auth
}

type registerRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// ServeHTTP creates a new user account.
//
//	@Summary		Register a new user
//	@Description	Creates an account and returns a welcome confirmation. Username
//	@Description	collisions are reported before email collisions.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Account details"
//	@Success		200		{string}	string			"Welcome confirmation"
//	@Failure		401		{object}	apierr.Error	"Username or email already taken"
//	@Failure		422		{object}	apierr.Error	"Missing or malformed fields"
//	@Router			/auth/ [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	if err := requireFields(
		required("username", req.Username == nil || *req.Username == ""),
		required("email", req.Email == nil || *req.Email == ""),
		required("password", req.Password == nil || *req.Password == ""),
	); err != nil {
		apierr.Write(w, err)
		return
	}
	if !strings.Contains(*req.Email, "@") {
		apierr.Write(w, apierr.Validation("Field 'email' must be a valid email address."))
		return
	}

	confirmation, err := h.AuthService.Register(ctx, *req.Username, *req.Email, *req.Password)
	if err != nil {
		if !apierr.HasName(err, apierr.NameRegistrationFailed) {
			log.Error("registration failed", "err", err)
		}
		apierr.Write(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, confirmation)
}
