// Package line exposes the dispatch service over HTTP.
//
// Every response uses the respond envelope: {"success": true, "result": ...}
// on success and {"success": false, "error": "..."} on failure.
package line

import (
	"context"
	"net/http"

	"line-dispatch/internal/common/pagination"
	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/handler/http/auth"
	"line-dispatch/internal/repository"
	"line-dispatch/internal/usecase/dispatch"
	"line-dispatch/internal/usecase/hook"
)

// Dispatcher is the part of dispatch.Service the handlers call.
type Dispatcher interface {
	Send(ctx context.Context, in dispatch.SendInput) (*entity.DeliveryStatus, error)
	Broadcast(ctx context.Context, in dispatch.BroadcastInput) (*entity.DeliveryStatus, error)
	SendFile(ctx context.Context, in dispatch.SendFileInput) (*entity.DeliveryStatus, error)
}

// ChangeHook reacts to a changed payroll report.
type ChangeHook interface {
	AfterChange(ctx context.Context, collection string, op hook.Operation, r entity.PayrollReport) *hook.DeliveryMirror
}

// Deps are the collaborators shared by the handlers. History and Hook may be
// nil, in which case their routes are not registered.
type Deps struct {
	Dispatcher    Dispatcher
	History       repository.MessageHistoryRepository
	Hook          ChangeHook
	PaginationCfg pagination.Config
}

// Register mounts the LINE routes on mux.
func Register(mux *http.ServeMux, d Deps) {
	mux.Handle("POST /api/line/send", SendHandler{Svc: d.Dispatcher})
	mux.Handle("POST /api/line/broadcast", BroadcastHandler{Svc: d.Dispatcher})
	mux.Handle("POST /api/line/send-file", SendFileHandler{Svc: d.Dispatcher})

	if d.Hook != nil {
		mux.Handle("POST /api/line/hooks/{collection}", HookHandler{Hook: d.Hook})
	}

	if d.History != nil {
		cfg := d.PaginationCfg
		if cfg.MaxLimit == 0 {
			cfg = pagination.DefaultConfig()
		}
		mux.Handle("GET /api/line/messages", ListHandler{Repo: d.History, PaginationCfg: cfg})
		mux.Handle("GET /api/line/messages/{id}", GetHandler{Repo: d.History})
	}
}

// senderContext tags ctx with the authenticated subject so it lands on the history record.
func senderContext(r *http.Request) context.Context {
	ctx := r.Context()
	if u, ok := auth.UserFromContext(ctx); ok {
		return dispatch.WithSender(ctx, u.Subject)
	}
	return ctx
}
