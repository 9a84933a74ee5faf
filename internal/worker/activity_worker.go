package worker

import (
	"github.com/spec-kit/staffing-tracker/internal/service"
)

// StartActivityWorker registers the audit-trail event handlers.
func StartActivityWorker(activityService *service.ActivityService) {
	if activityService == nil {
		return
	}
	activityService.RegisterHandlers()
}
