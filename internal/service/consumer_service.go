package service

import (
	"context"
	"encoding/json"

	"marketplace-be/internal/dto"
	"marketplace-be/internal/pkg/logger"
	"marketplace-be/internal/pkg/mailer"
	"marketplace-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the email worker: it drains the in-process notification
// queue and turns each message into an outbound email.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	mailer    mailer.IEmailService
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		mailer:    emailService,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.NotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("NOTIFIER", "Failed to unmarshal notification", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // malformed, retrying will not help
		return
	}

	var err error
	switch payload.Type {
	case events.TypeReturnSubmitted:
		err = cs.mailer.SendReturnReceived(payload.Email, payload.ProductName, payload.OrderNumber)
	case events.TypeRefundIssued:
		err = cs.mailer.SendRefundIssued(payload.Email, payload.OrderNumber, payload.Amount)
	case events.TypeOrderCancelled:
		err = cs.mailer.SendOrderCancelled(payload.Email, payload.OrderNumber, payload.Reason)
	default:
		cs.logger.Warn("NOTIFIER", "No email template for notification type", map[string]interface{}{
			"type": payload.Type,
		})
		msg.Ack()
		return
	}

	if err != nil {
		cs.logger.Error("NOTIFIER", "Failed to send email", map[string]interface{}{
			"type":  payload.Type,
			"email": payload.Email,
			"error": err.Error(),
		})
		msg.Nack() // transient SMTP failure, let the queue retry
		return
	}
	msg.Ack()
}
