package line

import (
	"fmt"
	"net/http"

	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/handler/http/respond"
	"line-dispatch/internal/usecase/hook"
)

// HookHandler receives afterChange notifications for a collection.
type HookHandler struct{ Hook ChangeHook }

// ServeHTTP runs the change hook
// @Summary      Notify a record change
// @Description  Called by the admin backend after a record in the collection changed. An approved payroll report whose employee has a LINE id is sent automatically. Send failures are logged and reported as not_sent, never as an error.
// @Tags         hooks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        collection path string true "collection slug" example(payroll-reports)
// @Param        body body HookRequest true "operation and changed document"
// @Success      200 {object} hook.DeliveryMirror
// @Failure      400 {object} ErrorEnvelope "malformed JSON body or unknown operation"
// @Failure      401 {object} ErrorEnvelope "missing or invalid JWT"
// @Failure      403 {object} ErrorEnvelope "insufficient role"
// @Router       /api/line/hooks/{collection} [post]
func (h HookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req HookRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.Error(w, err)
		return
	}
	switch req.Operation {
	case hook.OperationCreate, hook.OperationUpdate, hook.OperationDelete:
	default:
		respond.Error(w, fmt.Errorf("%w: unknown operation %q", entity.ErrInvalidInput, req.Operation))
		return
	}

	mirror := h.Hook.AfterChange(senderContext(r), r.PathValue("collection"), req.Operation, req.Doc)
	if mirror == nil {
		mirror = &hook.DeliveryMirror{LineDeliveryStatus: hook.DeliveryNotSent}
	}
	respond.OK(w, mirror)
}
