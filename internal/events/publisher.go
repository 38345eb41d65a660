package events

import (
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

// Publisher mirrors broadcast envelopes to an external bus so consumers
// other than the websocket dashboard (recorders, bots) can tap the stream.
type Publisher interface {
	Publish(env Envelope) error
	Close()
}

// NoopPublisher is used when no bus is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(Envelope) error { return nil }
func (NoopPublisher) Close()                 {}

// NATSPublisher publishes envelopes to race.events.<type>.
type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

// NewNATSPublisher connects to the given NATS URL with infinite reconnects.
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSPublisher{nc: nc, subject: "race.events"}, nil
}

func (p *NATSPublisher) Publish(env Envelope) error {
	data, err := env.Encode()
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s.%s", p.subject, env.Type)
	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (p *NATSPublisher) Close() {
	p.nc.Close()
}
