package line

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"line-dispatch/internal/common/pagination"
	"line-dispatch/internal/domain/entity"
	"line-dispatch/internal/handler/http/auth"
	"line-dispatch/internal/handler/http/respond"
	"line-dispatch/internal/usecase/dispatch"
	"line-dispatch/internal/usecase/hook"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* ───────── stubs ───────── */

type stubDispatcher struct {
	sendIn      dispatch.SendInput
	broadcastIn dispatch.BroadcastInput
	fileIn      dispatch.SendFileInput
	sender      string

	status *entity.DeliveryStatus
	err    error
}

func (s *stubDispatcher) Send(ctx context.Context, in dispatch.SendInput) (*entity.DeliveryStatus, error) {
	s.sendIn = in
	s.sender = dispatch.SenderFromContext(ctx)
	return s.status, s.err
}

func (s *stubDispatcher) Broadcast(ctx context.Context, in dispatch.BroadcastInput) (*entity.DeliveryStatus, error) {
	s.broadcastIn = in
	s.sender = dispatch.SenderFromContext(ctx)
	return s.status, s.err
}

func (s *stubDispatcher) SendFile(ctx context.Context, in dispatch.SendFileInput) (*entity.DeliveryStatus, error) {
	s.fileIn = in
	s.sender = dispatch.SenderFromContext(ctx)
	return s.status, s.err
}

type stubHook struct {
	collection string
	op         hook.Operation
	report     entity.PayrollReport
	mirror     *hook.DeliveryMirror
}

func (s *stubHook) AfterChange(_ context.Context, collection string, op hook.Operation, r entity.PayrollReport) *hook.DeliveryMirror {
	s.collection = collection
	s.op = op
	s.report = r
	return s.mirror
}

type stubHistory struct {
	records  []*entity.HistoryRecord
	offset   int
	limit    int
	listErr  error
	countErr error
	getErr   error
}

func (s *stubHistory) Create(_ context.Context, rec *entity.HistoryRecord) error {
	s.records = append(s.records, rec)
	return nil
}

func (s *stubHistory) Get(_ context.Context, id string) (*entity.HistoryRecord, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *stubHistory) List(_ context.Context, offset, limit int) ([]*entity.HistoryRecord, error) {
	s.offset, s.limit = offset, limit
	if s.listErr != nil {
		return nil, s.listErr
	}
	if offset >= len(s.records) {
		return nil, nil
	}
	end := min(offset+limit, len(s.records))
	return s.records[offset:end], nil
}

func (s *stubHistory) Count(context.Context) (int64, error) {
	return int64(len(s.records)), s.countErr
}

/* ───────── helpers ───────── */

func sentStatus() *entity.DeliveryStatus {
	at := time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)
	return &entity.DeliveryStatus{MessageID: "req-1", Status: entity.StateSent, SentAt: &at}
}

func newMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, d)
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, respond.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(auth.WithUser(req.Context(), auth.User{Subject: "ops@example.com", Role: auth.RoleEditor}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env respond.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr, env
}

/* ───────── send ───────── */

func TestSendHandler(t *testing.T) {
	t.Run("TC-1: success returns delivery status", func(t *testing.T) {
		svc := &stubDispatcher{status: sentStatus()}
		rr, env := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/send",
			`{"to":"U123","messages":[{"type":"text","text":"hi"}],"notificationDisabled":true}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, env.Success)
		result := env.Result.(map[string]any)
		assert.Equal(t, "req-1", result["messageId"])
		assert.Equal(t, "sent", result["status"])

		assert.Equal(t, "U123", svc.sendIn.To)
		require.Len(t, svc.sendIn.Messages, 1)
		assert.Equal(t, entity.KindText, svc.sendIn.Messages[0].Kind)
		require.NotNil(t, svc.sendIn.NotificationDisabled)
		assert.True(t, *svc.sendIn.NotificationDisabled)
		assert.Equal(t, "ops@example.com", svc.sender)
	})

	t.Run("TC-2: dispatch error is 500 with message", func(t *testing.T) {
		svc := &stubDispatcher{err: &entity.PlatformError{Op: "send LINE message", Err: errors.New("connection refused")}}
		rr, env := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/send",
			`{"to":"U123","messages":[{"type":"text","text":"hi"}]}`)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Error, "connection refused")
	})

	t.Run("TC-3: unsupported kind is still 500", func(t *testing.T) {
		svc := &stubDispatcher{err: &entity.UnsupportedKindError{Kind: entity.KindSticker}}
		rr, env := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/send",
			`{"to":"U123","messages":[{"type":"sticker"}]}`)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Equal(t, "unsupported message type: sticker", env.Error)
	})

	t.Run("TC-4: malformed JSON is 400", func(t *testing.T) {
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}}), http.MethodPost, "/api/line/send", `{"to":`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Error, "invalid JSON body")
	})

	t.Run("TC-5: oversized body is 413", func(t *testing.T) {
		h := http.MaxBytesHandler(newMux(Deps{Dispatcher: &stubDispatcher{}}), 16)
		rr, env := do(t, h, http.MethodPost, "/api/line/send",
			`{"to":"U123","messages":[{"type":"text","text":"`+strings.Repeat("x", 64)+`"}]}`)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		assert.Contains(t, env.Error, "request body exceeds 16 bytes")
	})
}

/* ───────── broadcast ───────── */

func TestBroadcastHandler(t *testing.T) {
	t.Run("TC-1: recipients are passed through", func(t *testing.T) {
		svc := &stubDispatcher{status: sentStatus()}
		rr, env := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/broadcast",
			`{"messages":[{"type":"text","text":"hi"}],"recipients":[{"id":"U1","type":"user"},{"id":"U2"}],"notification":false}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, env.Success)
		assert.Equal(t, []string{"U1", "U2"}, entity.RecipientIDs(svc.broadcastIn.Recipients))
		assert.Equal(t, entity.RecipientUser, svc.broadcastIn.Recipients[0].Kind)
		require.NotNil(t, svc.broadcastIn.Notification)
		assert.False(t, *svc.broadcastIn.Notification)
	})

	t.Run("TC-2: no recipients and no notification flag", func(t *testing.T) {
		svc := &stubDispatcher{status: sentStatus()}
		rr, _ := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/broadcast",
			`{"messages":[{"type":"text","text":"hi"}]}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, svc.broadcastIn.Recipients)
		assert.Nil(t, svc.broadcastIn.Notification)
	})

	t.Run("TC-3: dispatch error is 500", func(t *testing.T) {
		svc := &stubDispatcher{err: &entity.PlatformError{Op: "broadcast LINE message", Err: errors.New("boom")}}
		rr, env := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/broadcast",
			`{"messages":[{"type":"text","text":"hi"}]}`)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.False(t, env.Success)
	})
}

/* ───────── send-file ───────── */

func TestSendFileHandler(t *testing.T) {
	t.Run("TC-1: base64 data is decoded", func(t *testing.T) {
		svc := &stubDispatcher{status: sentStatus()}
		data := base64.StdEncoding.EncodeToString([]byte("%PDF-1.7"))
		rr, env := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/send-file",
			`{"to":"U1","fileData":"`+data+`","fileName":"slip.pdf","mimeType":"application/pdf"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, env.Success)
		assert.Equal(t, []byte("%PDF-1.7"), svc.fileIn.FileData)
		assert.Equal(t, "slip.pdf", svc.fileIn.FileName)
		assert.Equal(t, "application/pdf", svc.fileIn.MIMEType)
	})

	t.Run("TC-2: URL only", func(t *testing.T) {
		svc := &stubDispatcher{status: sentStatus()}
		rr, _ := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/send-file",
			`{"to":"U1","fileUrl":"https://cdn.example.com/a.png","fileName":"a.png","mimeType":"image/png","thumbnailUrl":"https://cdn.example.com/t.png"}`)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "https://cdn.example.com/a.png", svc.fileIn.FileURL)
		assert.Equal(t, "https://cdn.example.com/t.png", svc.fileIn.ThumbnailURL)
		assert.Nil(t, svc.fileIn.FileData)
	})

	t.Run("TC-3: invalid base64 is 400", func(t *testing.T) {
		svc := &stubDispatcher{}
		rr, env := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/send-file",
			`{"to":"U1","fileData":"***","fileName":"a.bin"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, env.Error, "not valid base64")
		assert.Empty(t, svc.fileIn.To)
	})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"TC-4: missing source", entity.ErrMissingFileSource, http.StatusBadRequest},
		{"TC-5: too large", &entity.PayloadTooLargeError{Size: 10, Limit: 5}, http.StatusRequestEntityTooLarge},
		{"TC-6: mime not allowed", entity.ErrMIMETypeNotAllowed, http.StatusBadRequest},
		{"TC-7: platform failure", &entity.PlatformError{Op: "send LINE file", Err: errors.New("boom")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubDispatcher{err: tt.err}
			rr, env := do(t, newMux(Deps{Dispatcher: svc}), http.MethodPost, "/api/line/send-file",
				`{"to":"U1","fileName":"a.bin"}`)

			assert.Equal(t, tt.want, rr.Code)
			assert.False(t, env.Success)
		})
	}
}

/* ───────── hooks ───────── */

func TestHookHandler(t *testing.T) {
	body := `{"operation":"update","doc":{"id":"r1","year":2024,"month":3,"netPay":50000,"status":"approved","employee":{"englishName":"Alex","lineId":"U9"}}}`

	t.Run("TC-1: mirror is returned", func(t *testing.T) {
		at := time.Date(2024, 3, 31, 9, 0, 0, 0, time.UTC)
		h := &stubHook{mirror: &hook.DeliveryMirror{LineDeliveryStatus: hook.DeliverySent, LineSentAt: &at, MessageID: "req-1"}}
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, Hook: h}), http.MethodPost,
			"/api/line/hooks/payroll-reports", body)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "sent", env.Result.(map[string]any)["lineDeliveryStatus"])

		assert.Equal(t, "payroll-reports", h.collection)
		assert.Equal(t, hook.OperationUpdate, h.op)
		assert.Equal(t, "U9", h.report.EmployeeLineID())
		assert.Equal(t, 50000.0, h.report.NetPay)
	})

	t.Run("TC-2: nothing sent reports not_sent", func(t *testing.T) {
		h := &stubHook{}
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, Hook: h}), http.MethodPost,
			"/api/line/hooks/payroll-reports", body)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "not_sent", env.Result.(map[string]any)["lineDeliveryStatus"])
	})

	t.Run("TC-3: unknown operation is 400", func(t *testing.T) {
		h := &stubHook{}
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, Hook: h}), http.MethodPost,
			"/api/line/hooks/payroll-reports", `{"operation":"archive","doc":{}}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, env.Error, `unknown operation "archive"`)
		assert.Empty(t, h.collection)
	})
}

func TestRegister_OptionalRoutes(t *testing.T) {
	mux := newMux(Deps{Dispatcher: &stubDispatcher{}})

	for _, path := range []string{"/api/line/messages", "/api/line/messages/01J0AAA"} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/line/hooks/payroll-reports", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

/* ───────── history ───────── */

func seedHistory(n int) *stubHistory {
	h := &stubHistory{}
	for i := range n {
		h.records = append(h.records, &entity.HistoryRecord{
			ID:         string(rune('a' + i)),
			MessageID:  "req",
			Type:       entity.KindText,
			Recipients: []string{"U1"},
			Status:     entity.DeliveryStatus{Status: entity.StateSent},
		})
	}
	return h
}

func TestListHandler(t *testing.T) {
	t.Run("TC-1: second page", func(t *testing.T) {
		repo := seedHistory(5)
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, History: repo, PaginationCfg: pagination.Config{DefaultLimit: 2, MaxLimit: 10}}),
			http.MethodGet, "/api/line/messages?page=2", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 2, repo.offset)
		assert.Equal(t, 2, repo.limit)

		result := env.Result.(map[string]any)
		data := result["data"].([]any)
		require.Len(t, data, 2)
		assert.Equal(t, "c", data[0].(map[string]any)["id"])

		meta := result["pagination"].(map[string]any)
		assert.Equal(t, 5.0, meta["total"])
		assert.Equal(t, 3.0, meta["totalPages"])
	})

	t.Run("TC-2: empty store returns empty data", func(t *testing.T) {
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, History: &stubHistory{}}),
			http.MethodGet, "/api/line/messages", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		result := env.Result.(map[string]any)
		assert.Equal(t, []any{}, result["data"])
	})

	t.Run("TC-3: invalid limit is 400", func(t *testing.T) {
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, History: &stubHistory{}}),
			http.MethodGet, "/api/line/messages?limit=1000", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, env.Error, "limit must be between 1 and 100")
	})

	t.Run("TC-4: repository error is 500", func(t *testing.T) {
		repo := &stubHistory{listErr: errors.New("ListHistory: connection reset")}
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, History: repo}),
			http.MethodGet, "/api/line/messages", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.False(t, env.Success)
	})

	t.Run("TC-5: count error is 500", func(t *testing.T) {
		repo := &stubHistory{countErr: errors.New("CountHistory: timeout")}
		rr, _ := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, History: repo}),
			http.MethodGet, "/api/line/messages", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestGetHandler(t *testing.T) {
	t.Run("TC-1: found", func(t *testing.T) {
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, History: seedHistory(3)}),
			http.MethodGet, "/api/line/messages/b", "")

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "b", env.Result.(map[string]any)["id"])
	})

	t.Run("TC-2: missing is 404", func(t *testing.T) {
		rr, env := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, History: seedHistory(1)}),
			http.MethodGet, "/api/line/messages/zzz", "")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, env.Error, `history record "zzz"`)
	})

	t.Run("TC-3: repository error is 500", func(t *testing.T) {
		repo := &stubHistory{getErr: errors.New("GetHistory: boom")}
		rr, _ := do(t, newMux(Deps{Dispatcher: &stubDispatcher{}, History: repo}),
			http.MethodGet, "/api/line/messages/a", "")

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
