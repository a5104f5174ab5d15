package usecase

import (
	"context"
	"encoding/json"
	"time"

	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/logger"
	"go-marketplace-backend/pkg/security"
)

// Auditor writes the admin action log and mirrors each entry to the
// security log. Failures are logged and never fail the admin request.
type Auditor struct {
	repo   domain.AdminRepository
	secLog *security.SecurityLogger
}

func NewAuditor(repo domain.AdminRepository, secLog *security.SecurityLogger) *Auditor {
	return &Auditor{repo: repo, secLog: secLog}
}

func (a *Auditor) Record(ctx context.Context, action, targetType, targetID string, details map[string]interface{}) {
	if a == nil {
		return
	}
	actorID := contextValue(ctx, domain.KeyUserID)

	entry := &domain.AdminAction{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		CreatedAt:  time.Now().UTC(),
	}
	if len(details) > 0 {
		if raw, err := json.Marshal(details); err == nil {
			entry.Details = raw
		}
	}

	if a.repo != nil {
		if err := a.repo.RecordAction(ctx, entry); err != nil {
			logger.Log.Error("failed to record admin action", "action", action, "target_id", targetID, "error", err)
		}
	}
	if a.secLog != nil {
		a.secLog.LogAdminAction(ctx, actorID, action, targetType, targetID)
	}
}
