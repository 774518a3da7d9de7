package http

import (
	"net/http"

	"github.com/aklatan/buklat/internal/catalog/domain"
	"github.com/aklatan/buklat/internal/catalog/service"
	"github.com/aklatan/buklat/pkg/apierr"
	"github.com/aklatan/buklat/pkg/httpx"
	"github.com/aklatan/buklat/pkg/slogx"
)

type RecommendersHandler struct {
	Service *service.Recommenders
}

type recommenderRequest struct {
	Name *string `json:"name"`
}

// HandleCreate creates a recommender.
//
//	@Summary	Create recommender
//	@Tags		Recommenders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		body	body		recommenderRequest	true	"Recommender details"
//	@Success	200		{object}	domain.Recommender
//	@Failure	409		{object}	apierr.Error	"Recommender already exists"
//	@Failure	422		{object}	apierr.Error	"Missing or malformed fields"
//	@Router		/v1/recommenders [post].
func (h *RecommendersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req recommenderRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.Write(w, err)
		return
	}
	if err := requireFields(required("name", req.Name == nil || *req.Name == "")); err != nil {
		apierr.Write(w, err)
		return
	}

	rec, err := h.Service.Create(ctx, domain.RecommenderParams{Name: *req.Name})
	if err != nil {
		writeEntityError(w, log, "create recommender", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// HandleList lists all recommenders.
//
//	@Summary	List recommenders
//	@Tags		Recommenders
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}	domain.Recommender
//	@Router		/v1/recommenders [get].
func (h *RecommendersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	recs, err := h.Service.List(ctx)
	if err != nil {
		writeEntityError(w, log, "list recommenders", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, recs)
}

// HandleGet fetches one recommender.
//
//	@Summary	Get recommender
//	@Tags		Recommenders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Recommender id"
//	@Success	200	{object}	domain.Recommender
//	@Failure	404	{object}	apierr.Error	"Recommender does not exist"
//	@Router		/v1/recommenders/{id} [get].
func (h *RecommendersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	rec, err := h.Service.Get(ctx, id)
	if err != nil {
		writeEntityError(w, log, "get recommender", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// HandleUpdate renames a recommender.
//
//	@Summary	Update recommender
//	@Tags		Recommenders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Recommender id"
//	@Param		body	body		recommenderRequest	true	"Fields to update"
//	@Success	200		{object}	domain.Recommender
//	@Failure	404		{object}	apierr.Error	"Recommender does not exist"
//	@Failure	409		{object}	apierr.Error	"Name already taken"
//	@Router		/v1/recommenders/{id} [put].
func (h *RecommendersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	var req recommenderRequest
	if err := decodeJSON(r, &req); err != nil {
		apierr.Write(w, err)
		return
	}

	rec, err := h.Service.Update(ctx, id, domain.RecommenderUpdate{Name: req.Name})
	if err != nil {
		writeEntityError(w, log, "update recommender", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

// HandleDelete removes a recommender and echoes the deleted row.
//
//	@Summary	Delete recommender
//	@Tags		Recommenders
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Recommender id"
//	@Success	200	{object}	domain.Recommender	"Deleted recommender"
//	@Failure	404	{object}	apierr.Error		"Recommender does not exist"
//	@Router		/v1/recommenders/{id} [delete].
func (h *RecommendersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, err := pathID(r)
	if err != nil {
		apierr.Write(w, err)
		return
	}

	rec, err := h.Service.Delete(ctx, id)
	if err != nil {
		writeEntityError(w, log, "delete recommender", err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}
