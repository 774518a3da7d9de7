package http

import (
	"net/http"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/internal/catalog/service"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/aklatan/buklat/pkg/httpx"
	"github.com/aklatan/buklat/pkg/slogx"
)

type BooksHandler struct {
	Service *service.Books
}

type bookCreateRequest struct {
	AuthorID      *int64  `json:"author_id"`
	RecommenderID *int64  `json:"recommender_id"`
	Title         *string `json:"title"`
	YearPublished *int    `json:"year_published"`
	IsPurchased   *bool   `json:"is_purchased"`
	IsRead        *bool   `json:"is_read"`
}

type bookUpdateRequest struct {
	AuthorID      *int64  `json:"author_id"`
	RecommenderID *int64  `json:"recommender_id"`
	Title         *string `json:"title"`
	YearPublished *int    `json:"year_published"`
	IsPurchased   *bool   `json:"is_purchased"`
	IsRead        *bool   `json:"is_read"`
}

// HandleCreate creates a book. Both referenced dimension rows must exist;
// the author is checked first.
//
//	@Summary	Create book
//	@Tags		Books
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		bookCreateRequest	true	"Book details"
//	@Success	200		{object}	domain.Book
//	@Failure	404		{object}	apierr.Error	"Referenced author or recommender does not exist"
//	@Failure	422		{object}	apierr.Error	"Missing or malformed fields"
//	@Router		/v1/book [post].
func (h *BooksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req bookCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := requireFields(
		required("author_id", req.AuthorID == nil),
		required("recommender_id", req.RecommenderID == nil),
		required("title", req.Title == nil || *req.Title == ""),
		required("year_published", req.YearPublished == nil),
	); err != nil {
		apierr.Write(w, err)
		return
	}

	book, err := h.Service.Create(ctx, domain.BookParams{
		AuthorID:      *req.AuthorID,
		RecommenderID: *req.RecommenderID,
		Title:         *req.Title,
		YearPublished: *req.YearPublished,
		IsPurchased:   req.IsPurchased,
		IsRead:        req.IsRead,
	})
	if err != nil {
		writeEntityError(w, log, "create book", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, book)
}

// HandleList lists all books.
//
//	@Summary	List books
//	@Tags		Books
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	domain.Book
//	@Router		/v1/book [get].
func (h *BooksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	books, err := h.Service.List(ctx)
	if err != nil {
		writeEntityError(w, log, "list books", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, books)
}

// HandleGet fetches one book.
//
//	@Summary	Get book
//	@Tags		Books
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Book id"
//	@Success	200	{object}	domain.Book
//	@Failure	404	{object}	apierr.Error	"Book does not exist"
//	@Router		/v1/book/{id} [get].
func (h *BooksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	book, err := h.Service.Get(ctx, id)
	if err != nil {
		writeEntityError(w, log, "get book", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, book)
}

// HandleUpdate applies a partial update. Absent fields keep their stored
// values; re-pointed references are re-validated.
//
//	@Summary	Update book
//	@Tags		Books
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Book id"
//	@Param		body	body		bookUpdateRequest	true	"Fields to update"
//	@Success	200		{object}	domain.Book
//	@Failure	404		{object}	apierr.Error	"Book, author or recommender does not exist"
//	@Router		/v1/book/{id} [put].
func (h *BooksHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req bookUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	book, err := h.Service.Update(ctx, id, domain.BookUpdate{
		AuthorID:      req.AuthorID,
		RecommenderID: req.RecommenderID,
		Title:         req.Title,
		YearPublished: req.YearPublished,
		IsPurchased:   req.IsPurchased,
		IsRead:        req.IsRead,
	})
	if err != nil {
		writeEntityError(w, log, "update book", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, book)
}

// HandleDelete removes a book and echoes the deleted row.
//
//	@Summary	Delete book
//	@Tags		Books
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Book id"
//	@Success	200	{object}	domain.Book		"Deleted book"
//	@Failure	404	{object}	apierr.Error	"Book does not exist"
//	@Router		/v1/book/{id} [delete].
func (h *BooksHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	book, err := h.Service.Delete(ctx, id)
	if err != nil {
		writeEntityError(w, log, "delete book", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, book)
}
