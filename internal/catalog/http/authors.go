package http

import (
	"net/http"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/internal/catalog/service"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/aklatan/buklat/pkg/httpx"
	"github.com/aklatan/buklat/pkg/slogx"
)

type AuthorsHandler struct {
	Service *service.Authors
}

type authorRequest struct {
	Name *string `json:"name"`
}

// HandleCreate creates an author.
//
//	@Summary	Create author
//	@Tags		Authors
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		authorRequest	true	"Author details"
//	@Success	200		{object}	domain.Author
//	@Failure	409		{object}	apierr.Error	"Author already exists"
//	@Failure	422		{object}	apierr.Error	"Missing or malformed fields"
//	@Router		/v1/authors [post].
func (h *AuthorsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req authorRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := requireFields(required("name", req.Name == nil || *req.Name == "")); err != nil {
		apierr.Write(w, err)
		return
	}

	author, err := h.Service.Create(ctx, domain.AuthorParams{Name: *req.Name})
	if err != nil {
		writeEntityError(w, log, "create author", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, author)
}

// HandleList lists all authors.
//
//	@Summary	List authors
//	@Tags		Authors
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	domain.Author
//	@Router		/v1/authors [get].
func (h *AuthorsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	authors, err := h.Service.List(ctx)
	if err != nil {
		writeEntityError(w, log, "list authors", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authors)
}

// HandleGet fetches one author.
//
//	@Summary	Get author
//	@Tags		Authors
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Author id"
//	@Success	200	{object}	domain.Author
//	@Failure	404	{object}	apierr.Error	"Author does not exist"
//	@Router		/v1/authors/{id} [get].
func (h *AuthorsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	author, err := h.Service.Get(ctx, id)
	if err != nil {
		writeEntityError(w, log, "get author", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, author)
}

// HandleUpdate renames an author. Absent fields are left untouched.
//
//	@Summary	Update author
//	@Tags		Authors
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int				true	"Author id"
//	@Param		body	body		authorRequest	true	"Fields to update"
//	@Success	200		{object}	domain.Author
//	@Failure	404		{object}	apierr.Error	"Author does not exist"
//	@Failure	409		{object}	apierr.Error	"Name already taken"
//	@Router		/v1/authors/{id} [put].
func (h *AuthorsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req authorRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	author, err := h.Service.Update(ctx, id, domain.AuthorUpdate{Name: req.Name})
	if err != nil {
		writeEntityError(w, log, "update author", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, author)
}

// HandleDelete removes an author and echoes the deleted row.
//
//	@Summary	Delete author
//	@Tags		Authors
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Author id"
//	@Success	200	{object}	domain.Author	"Deleted author"
//	@Failure	404	{object}	apierr.Error	"Author does not exist"
//	@Router		/v1/authors/{id} [delete].
func (h *AuthorsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	author, err := h.Service.Delete(ctx, id)
	if err != nil {
		writeEntityError(w, log, "delete author", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, author)
}
