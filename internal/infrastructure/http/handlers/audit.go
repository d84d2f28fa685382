package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jiggy-ai/jiggy-user-api/internal/application/ports"
)

// AuditLog logs auth events (user_id, method, IP).
func AuditLog(log zerolog.Logger, r *http.Request, event string, userID int64, method string, success bool, errMsg string) {
	ev := log.Info()
	if !success {
		ev = log.Warn()
	}
	ev.
		Str("event", event).
		Str("user_id", formatUserID(userID)).
		Str("method", method).
		Str("ip", getClientIP(r)).
		Str("request_id", middleware.GetReqID(r.Context())).
		Bool("success", success)
	if errMsg != "" {
		ev.Str("error", errMsg)
	}
	ev.Msg("auth_audit")
}

// AuditEmit logs the event and, if emitter is non-nil, sends it to the webhook endpoint.
func AuditEmit(log zerolog.Logger, r *http.Request, emitter ports.WebhookEmitter, event string, userID int64, method string, success bool, errMsg string) {
	AuditLog(log, r, event, userID, method, success, errMsg)
	if emitter != nil {
		_ = emitter.Emit(r.Context(), ports.AuditEvent{
			Event:   event,
			UserID:  formatUserID(userID),
			Method:  method,
			IP:      getClientIP(r),
			Success: success,
			Err:     errMsg,
		})
	}
}

func formatUserID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return r.RemoteAddr
}
