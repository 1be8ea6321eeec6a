// Package audit records security events with sensitive data removed. Logging
// never fails the caller: errors and panics are reduced to a local error log.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"gedo/internal/model"
)

// Actions recorded by the service.
const (
	ActionLoginSuccess     = "LOGIN_SUCCESS"
	ActionLoginFailed      = "LOGIN_FAILED"
	ActionLoginBlocked     = "LOGIN_BLOCKED"
	ActionRegistroCreated  = "REGISTRO_CREATED"
	ActionRegistroUpdated  = "REGISTRO_UPDATED"
	ActionRegistroDeleted  = "REGISTRO_DELETED"
	ActionUploadRejected   = "UPLOAD_REJECTED"
	ActionAttachmentFailed = "ATTACHMENT_CLEANUP_FAILED"

	ActionUserCreated            = "USER_CREATED"
	ActionUserUpdated            = "USER_UPDATED"
	ActionUserDeleted            = "USER_DELETED"
	ActionPasswordChangedByUser  = "PASSWORD_CHANGED_BY_USER"
	ActionPasswordChangedByAdmin = "PASSWORD_CHANGED_BY_ADMIN"
	ActionPasswordChangeFailed   = "PASSWORD_CHANGE_FAILED"
	ActionPasswordChangeBlocked  = "PASSWORD_CHANGE_BLOCKED"

	ActionObraCreated = "OBRA_CREATED"
	ActionObraUpdated = "OBRA_UPDATED"
	ActionObraDeleted = "OBRA_DELETED"

	ActionTipoRegistroCreated = "TIPO_REGISTRO_CREATED"
	ActionTipoRegistroUpdated = "TIPO_REGISTRO_UPDATED"
	ActionTipoRegistroDeleted = "TIPO_REGISTRO_DELETED"
)

// Entry is one audit record after redaction.
type Entry struct {
	Timestamp time.Time      `json:"timestamp"`
	Action    string         `json:"action"`
	UserID    string         `json:"user_id,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	IP        string         `json:"ip"`
	UserAgent string         `json:"user_agent"`
	Details   map[string]any `json:"details"`
}

// Sink persists entries. The Postgres audit repository implements it.
type Sink interface {
	Insert(ctx context.Context, log *model.AuditLog) error
}

type (
	clientKey    struct{}
	requestIDKey struct{}
)

type client struct {
	ip        string
	userAgent string
}

// WithClient attaches the caller's address and User-Agent to ctx.
func WithClient(ctx context.Context, ip, userAgent string) context.Context {
	return context.WithValue(ctx, clientKey{}, client{ip: ip, userAgent: userAgent})
}

func clientFrom(ctx context.Context) client {
	if c, ok := ctx.Value(clientKey{}).(client); ok {
		return c
	}
	return client{ip: "unknown", userAgent: "unknown"}
}

// WithRequestID attaches the HTTP request id to ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id set by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Logger writes audit entries to slog and, when set, to a sink.
type Logger struct {
	logger *slog.Logger
	sink   Sink
	now    func() time.Time
}

func New(logger *slog.Logger, sink Sink) *Logger {
	return &Logger{logger: logger, sink: sink, now: time.Now}
}

// Log records action. It returns nil when the entry could not be built.
func (l *Logger) Log(ctx context.Context, action, userID string, details map[string]any) (entry *Entry) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.ErrorContext(ctx, "audit log failed", "action", action, "panic", r)
			entry = nil
		}
	}()

	redacted, _ := Redact(details).(map[string]any)
	if redacted == nil {
		redacted = map[string]any{}
	}
	c := clientFrom(ctx)

	entry = &Entry{
		Timestamp: l.now(),
		Action:    action,
		UserID:    userID,
		RequestID: RequestIDFrom(ctx),
		IP:        c.ip,
		UserAgent: c.userAgent,
		Details:   redacted,
	}

	l.logger.InfoContext(ctx, "audit",
		"action", entry.Action,
		"user_id", entry.UserID,
		"request_id", entry.RequestID,
		"ip", entry.IP,
		"user_agent", entry.UserAgent,
		"details", entry.Details,
	)

	if l.sink != nil {
		err := l.sink.Insert(ctx, &model.AuditLog{
			ID:        uuid.NewString(),
			Action:    entry.Action,
			UserID:    entry.UserID,
			RequestID: entry.RequestID,
			IPAddress: entry.IP,
			UserAgent: entry.UserAgent,
			Details:   entry.Details,
			CreatedAt: entry.Timestamp,
		})
		if err != nil {
			l.logger.ErrorContext(ctx, "persist audit entry", "action", action, "error", err)
		}
	}
	return entry
}
