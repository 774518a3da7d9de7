package http

import (
	"net/http"

	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/aklatan/buklat/pkg/httpx"
)

type MeHandler struct{}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// ServeHTTP returns the authenticated account's profile.
//
//	@Summary		Current user
//	@Description	Returns the account resolved from the bearer token.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	userResponse	"Account profile"
//	@Failure		401	{object}	apierr.Error	"Invalid or missing token"
//	@Failure		403	{object}	apierr.Error	"Account disabled"
//	@Router			/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		apierr.Write(w, apierr.InvalidToken("Not authenticated."))
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsActive: user.IsActive,
	})
}
