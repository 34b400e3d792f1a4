package mailer

import (
	"context"

	"github.com/castwave/castwave/pkg/helpers"
)

// Publisher enqueues email jobs onto the RabbitMQ queue consumed by
// cmd/email_worker. A nil Rabbit or a disabled toggle makes it a no-op.
type Publisher struct {
	Rabbit  *helpers.RabbitPublisher
	Enabled bool
}

func NewPublisher(rabbit *helpers.RabbitPublisher, enabled bool) *Publisher {
	return &Publisher{Rabbit: rabbit, Enabled: enabled}
}

// PublishWelcome enqueues the post-signup welcome email.
func (p *Publisher) PublishWelcome(ctx context.Context, to, username string) error {
	if p == nil || !p.Enabled || p.Rabbit == nil {
		return nil
	}
	return p.Rabbit.PublishJSON(ctx, NewWelcomeJob(to, username))
}
