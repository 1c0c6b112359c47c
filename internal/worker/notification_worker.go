package worker

import (
	"github.com/itops/helpdesk-service/internal/service"
)

// StartNotificationWorker registers notification handlers on the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}
