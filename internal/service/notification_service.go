package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/listing-portal/internal/config"
	"github.com/spec-kit/listing-portal/internal/domain"
	"github.com/spec-kit/listing-portal/internal/events"
	"github.com/spec-kit/listing-portal/internal/mail"
	"github.com/spec-kit/listing-portal/pkg/util"
)

// NotificationService emails submitters about moderation outcomes. Dispatch is
// fire-and-forget: the decision already returned to the administrator and no
// send failure can change it.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mail.Sender
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender mail.Sender, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventListingDecided, n.handleListingDecided)
}

// handleListingDecided hands the send to a goroutine so provider latency can
// never delay the response computed from the status update.
func (n *NotificationService) handleListingDecided(_ context.Context, event events.Event) error {
	go n.notifyDecision(context.Background(), event)
	return nil
}

func (n *NotificationService) notifyDecision(ctx context.Context, event events.Event) {
	payload, ok := event.Payload.(events.ListingDecidedPayload)
	if !ok {
		n.logger.Warn("unexpected payload for listing_decided", zap.Int64("listing_id", event.ListingID))
		return
	}

	to := strings.TrimSpace(payload.Contact.Email)
	if to == "" {
		n.logger.Info("no email on file; skipping notification", zap.Int64("listing_id", event.ListingID))
		return
	}

	msg := buildDecisionEmail(to, payload)

	sendCtx, cancel := context.WithTimeout(ctx, n.cfg.SendTimeout())
	defer cancel()
	if err := n.sender.Send(sendCtx, msg); err != nil {
		n.logger.Warn("outcome email failed",
			zap.String("code", util.CodeNotificationFailed),
			zap.Int64("listing_id", event.ListingID),
			zap.Error(err),
		)
		return
	}
	n.logger.Info("outcome email sent",
		zap.Int64("listing_id", event.ListingID),
		zap.String("status", string(payload.NewStatus)),
	)
}

func buildDecisionEmail(to string, payload events.ListingDecidedPayload) mail.Message {
	name := strings.TrimSpace(payload.Contact.Name)
	if name == "" {
		name = "there"
	}

	if payload.NewStatus == domain.ListingStatusApproved {
		return mail.Message{
			To:      to,
			Subject: "Your listing has been approved",
			HTMLBody: fmt.Sprintf(
				"<p>Hi %s,</p><p>Good news: your professional listing was approved and is now visible in the directory.</p>",
				name),
			TextBody: fmt.Sprintf(
				"Hi %s,\n\nGood news: your professional listing was approved and is now visible in the directory.\n",
				name),
		}
	}

	reason := strings.TrimSpace(payload.Reason)
	reasonHTML := ""
	reasonText := ""
	if reason != "" {
		reasonHTML = fmt.Sprintf("<p>Reason: %s</p>", reason)
		reasonText = fmt.Sprintf("Reason: %s\n", reason)
	}
	return mail.Message{
		To:      to,
		Subject: "Your listing was not approved",
		HTMLBody: fmt.Sprintf(
			"<p>Hi %s,</p><p>Unfortunately your professional listing was not approved.</p>%s",
			name, reasonHTML),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nUnfortunately your professional listing was not approved.\n%s",
			name, reasonText),
	}
}
