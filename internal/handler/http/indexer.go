package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/catalog-indexer/internal/indexing"
	"github.com/utafrali/catalog-indexer/internal/service"
	apperrors "github.com/utafrali/catalog-indexer/pkg/errors"
	"github.com/utafrali/catalog-indexer/pkg/httputil"
)

// IndexerHandler handles HTTP requests for the indexing admin endpoints.
type IndexerHandler struct {
	service *service.IndexerService
	logger  *slog.Logger
}

// NewIndexerHandler creates a new indexer HTTP handler.
func NewIndexerHandler(svc *service.IndexerService, logger *slog.Logger) *IndexerHandler {
	return &IndexerHandler{
		service: svc,
		logger:  logger,
	}
}

// validEntityTypes guards the delete endpoint's path parameter.
var validEntityTypes = map[string]struct{}{
	indexing.TypeProduct:              {},
	indexing.TypeSku:                  {},
	indexing.TypeCategory:             {},
	indexing.TypeRule:                 {},
	indexing.TypeStaffUser:            {},
	indexing.TypeCustomer:             {},
	indexing.TypeShippingServiceLevel: {},
}

// Reindex handles POST /api/v1/index/reindex. The pass runs in the
// background; the response only acknowledges the start.
func (h *IndexerHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	if h.service.Status().Running {
		httputil.WriteError(w, r, service.ErrReindexRunning, h.logger)
		return
	}

	go func() {
		ctx := context.Background()
		result, err := h.service.Reindex(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "background reindex failed", slog.String("error", err.Error()))
			return
		}
		h.logger.InfoContext(ctx, "background reindex finished",
			slog.Int64("docs_in", result.DocsIn),
			slog.Int64("docs_out", result.DocsOut),
			slog.Int64("failed", result.Failed),
		)
	}()

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{Data: map[string]string{"status": "reindex started"}})
}

// Status handles GET /api/v1/index/status.
func (h *IndexerHandler) Status(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Status()})
}

// DeleteDocument handles DELETE /api/v1/index/{entityType}/{uid}.
func (h *IndexerHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	if _, ok := validEntityTypes[entityType]; !ok {
		httputil.WriteError(w, r, apperrors.InvalidInput("unknown entity type: "+entityType), h.logger)
		return
	}

	uid, err := strconv.ParseInt(chi.URLParam(r, "uid"), 10, 64)
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("uid must be an integer"), h.logger)
		return
	}

	if err := h.service.DeleteEntity(r.Context(), entityType, uid); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}
