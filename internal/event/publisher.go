// Package event publishes website lifecycle events to RabbitMQ so other
// services (analytics, notifications) can react without polling the store.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"siteforge/pkg/domain"
)

const exchangeName = "website.events"

// Routing keys for website lifecycle events.
const (
	TypeWebsiteCreated = "website.created"
	TypeWebsiteUpdated = "website.updated"
	TypeWebsiteDeleted = "website.deleted"
	TypeWebsiteViewed  = "website.viewed"
)

// WebsiteEvent is the payload published for every lifecycle event.
// Views is only meaningful for website.viewed.
type WebsiteEvent struct {
	EventType string `json:"eventType"`
	SiteID    string `json:"siteId"`
	Name      string `json:"name,omitempty"`
	Template  string `json:"template,omitempty"`
	Theme     string `json:"theme,omitempty"`
	IsPublic  bool   `json:"isPublic"`
	Views     int64  `json:"views,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher emits website lifecycle events.
type Publisher interface {
	PublishWebsiteEvent(ctx context.Context, eventType string, rec domain.WebsiteRecord) error
	Close() error
}

// AMQPPublisher publishes to a durable topic exchange. A Publisher built
// from an empty URI is a no-op, so callers never branch on whether
// messaging is configured.
type AMQPPublisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	enabled bool
}

// NewAMQPPublisher connects and declares the exchange. An empty URI
// disables publishing instead of failing startup.
func NewAMQPPublisher(uri string) (*AMQPPublisher, error) {
	if uri == "" {
		slog.Warn("amqp uri empty, event publishing disabled")
		return &AMQPPublisher{enabled: false}, nil
	}

	conn, err := amqp091.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, enabled: true}, nil
}

// PublishWebsiteEvent emits one lifecycle event for rec.
func (p *AMQPPublisher) PublishWebsiteEvent(ctx context.Context, eventType string, rec domain.WebsiteRecord) error {
	if !p.enabled {
		return nil
	}

	body, err := json.Marshal(WebsiteEvent{
		EventType: eventType,
		SiteID:    rec.ID,
		Name:      rec.PersonalInfo.Name,
		Template:  string(rec.Template),
		Theme:     string(rec.Theme),
		IsPublic:  rec.IsPublic,
		Views:     rec.Views,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		pubCtx,
		exchangeName,
		eventType,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", eventType, err)
	}

	slog.Debug("published event", "type", eventType, "site_id", rec.ID)
	return nil
}

// Close shuts the channel and connection down.
func (p *AMQPPublisher) Close() error {
	if !p.enabled {
		return nil
	}
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			slog.Error("close rabbitmq channel", "error", err)
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}
