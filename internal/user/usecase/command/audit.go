package command

import (
	"context"

	auditdomain "github.com/tair/warehouse-inventory/internal/audit/domain"
	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func recorderOrNop(recorder auditdomain.Recorder) auditdomain.Recorder {
	if recorder == nil {
		return auditdomain.NopRecorder{}
	}
	return recorder
}

func recordUserChange(ctx context.Context, recorder auditdomain.Recorder, action, actorID, userID string, changes interface{}) {
	recorder.Record(ctx, auditdomain.Entry{
		Action:       action,
		ResourceType: auditdomain.ResourceUser,
		ResourceID:   userID,
		UserID:       actorID,
		Changes:      changes,
	})
}

// admins may not demote, deactivate or delete themselves
func refuseSelf(actorID, targetID, what string) error {
	if actorID != "" && actorID == targetID {
		return apperror.InvalidArgument("You cannot %s your own account", what)
	}
	return nil
}
