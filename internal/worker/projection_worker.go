package worker

import (
	"github.com/spec-kit/fieldops-service/internal/service"
)

// StartProjectionWorkers registers event handlers that maintain derived
// views and emit notifications.
func StartProjectionWorkers(reportService *service.ReportService, notificationService *service.NotificationService) {
	if reportService != nil {
		reportService.RegisterHandlers()
	}
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
}
