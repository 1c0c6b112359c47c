package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/itops/helpdesk-service/internal/config"
	"github.com/itops/helpdesk-service/internal/events"
)

// NotificationService emits notifications for ticket events. Delivery is a
// logging stub until a real webhook consumer lands.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to ticket events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketEvent)
	n.dispatcher.Subscribe(events.EventTicketUpdated, n.handleTicketEvent)
	n.dispatcher.Subscribe(events.EventTicketCompleted, n.handleTicketEvent)
	n.dispatcher.Subscribe(events.EventTicketDeleted, n.handleTicketEvent)
}

func (n *NotificationService) handleTicketEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("ticket event",
		zap.String("type", string(event.Type)),
		zap.Int64("ticket_id", event.TicketID),
		zap.Int64("ticket_number", event.TicketNumber),
		zap.String("actor", event.Actor))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
