package line

import (
	"fmt"
	"log/slog"
	"net/http"

	"line-dispatch/internal/common/pagination"
	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/handler/http/respond"
	"line-dispatch/internal/observability/logging"
	"line-dispatch/internal/repository"
)

// ListHandler pages through the message history, newest first.
type ListHandler struct {
	Repo          repository.MessageHistoryRepository
	PaginationCfg pagination.Config
}

// ServeHTTP lists history records
// @Summary      List message history
// @Description  Returns dispatch history records, newest first.
// @Tags         history
// @Security     BearerAuth
// @Produce      json
// @Param        page   query    int  false  "page number (1-based)" default(1) minimum(1)
// @Param        limit  query    int  false  "records per page" default(20) minimum(1) maximum(100)
// @Success      200 {object} pagination.Response[entity.HistoryRecord]
// @Failure      400 {object} ErrorEnvelope "invalid query parameters"
// @Failure      401 {object} ErrorEnvelope "missing or invalid JWT"
// @Failure      403 {object} ErrorEnvelope "insufficient role"
// @Failure      500 {object} ErrorEnvelope "database error"
// @Router       /api/line/messages [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		pagination.RecordRequest(http.StatusBadRequest, params.Page)
		respond.Error(w, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err))
		return
	}

	total, err := h.Repo.Count(ctx)
	if err != nil {
		logger.Error("count history failed", slog.String("error", err.Error()))
		pagination.RecordRequest(http.StatusInternalServerError, params.Page)
		respond.Error(w, err)
		return
	}

	records, err := h.Repo.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		logger.Error("list history failed",
			slog.Int("page", params.Page),
			slog.Int("limit", params.Limit),
			slog.String("error", err.Error()))
		pagination.RecordRequest(http.StatusInternalServerError, params.Page)
		respond.Error(w, err)
		return
	}

	data := make([]entity.HistoryRecord, 0, len(records))
	for _, rec := range records {
		data = append(data, *rec)
	}

	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.UpdateTotalCount(total)
	respond.OK(w, pagination.NewResponse(data, pagination.NewMetadata(params, total)))
}

// GetHandler returns one history record.
type GetHandler struct {
	Repo repository.MessageHistoryRepository
}

// ServeHTTP gets a history record
// @Summary      Get a history record
// @Tags         history
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "history record id"
// @Success      200 {object} entity.HistoryRecord
// @Failure      401 {object} ErrorEnvelope "missing or invalid JWT"
// @Failure      403 {object} ErrorEnvelope "insufficient role"
// @Failure      404 {object} ErrorEnvelope "record not found"
// @Failure      500 {object} ErrorEnvelope "database error"
// @Router       /api/line/messages/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	rec, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		logging.FromContext(r.Context()).Error("get history failed",
			slog.String("id", id),
			slog.String("error", err.Error()))
		respond.Error(w, err)
		return
	}
	if rec == nil {
		respond.Error(w, fmt.Errorf("history record %q: %w", id, entity.ErrNotFound))
		return
	}

	respond.OK(w, rec)
}
