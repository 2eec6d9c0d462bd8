package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/mssola/useragent"

	"festregistry/internal/domain"
)

type activityLogger struct {
	repo   domain.ActivityRepository
	logger *slog.Logger
}

// NewActivityLogger creates the best-effort audit trail writer. Append
// failures are written to the operational log and swallowed; logging can
// never fail the operation being audited.
func NewActivityLogger(repo domain.ActivityRepository, logger *slog.Logger) domain.ActivityLogger {
	return &activityLogger{repo: repo, logger: logger}
}

func (l *activityLogger) Log(ctx context.Context, registrationID *int64, activityType string, payload map[string]any, originAddr, originAgent string) {
	if payload == nil {
		payload = map[string]any{}
	}
	if originAgent != "" {
		ua := useragent.New(originAgent)
		browser, version := ua.Browser()
		payload["client"] = map[string]any{
			"browser":         browser,
			"browser_version": version,
			"os":              ua.OS(),
			"mobile":          ua.Mobile(),
			"bot":             ua.Bot(),
		}
	}

	rec := &domain.ActivityRecord{
		RegistrationID: registrationID,
		ActivityType:   activityType,
		Payload:        payload,
		IPAddress:      orUnknown(originAddr),
		UserAgent:      orUnknown(originAgent),
		CreatedAt:      time.Now().UTC(),
	}
	if err := l.repo.Append(ctx, rec); err != nil {
		l.logger.ErrorContext(ctx, "activity log append failed",
			"activity_type", activityType, "err", err)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
