package http

import (
	"net/http"

	"github.com/aklatan/buklat/internal/catalog/service"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/aklatan/buklat/pkg/httpx"
	"github.com/aklatan/buklat/pkg/slogx"
)

type LoginHandler struct {
	AuthService *service.Auth
}

// ServeHTTP exchanges form credentials for a bearer token.
//
//	@Summary		Login for an access token
//	@Description	Standard password flow: form-encoded username and password in,
//	@Description	JWT access token out.
//	@Tags			Auth
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string			true	"Username"
//	@Param			password	formData	string			true	"Password"
//	@Success		200			{object}	domain.Token	"Access token"
//	@Failure		401			{object}	apierr.Error	"Invalid username or password"
//	@Failure		422			{object}	apierr.Error	"Missing form fields"
//	@Router			/auth/token [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseForm(); err != nil {
		apierr.Write(w, apierr.Validation("Request body is not a valid form."))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if err := requireFields(
		required("username", username == ""),
		required("password", password == ""),
	); err != nil {
		apierr.Write(w, err)
		return
	}

	token, err := h.AuthService.Login(ctx, username, password)
	if err != nil {
		if !apierr.HasName(err, apierr.NameAuthenticationFailed) {
			log.Error("login failed", "err", err)
		}
		apierr.Write(w, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, token)
}
