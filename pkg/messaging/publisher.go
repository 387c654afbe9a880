package messaging

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/matst80/shophub-catalog/pkg/types"
)

// FeedPublisher is the ops-side counterpart of FeedListener: it declares
// the feed topics and publishes full collection replacements.
type FeedPublisher struct {
	Prefix     string
	connection *amqp.Connection
}

func NewFeedPublisher(conn *amqp.Connection, prefix string) (*FeedPublisher, error) {
	p := &FeedPublisher{
		Prefix:     prefix,
		connection: conn,
	}
	if err := p.defineTopics(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *FeedPublisher) defineTopics() error {
	ch, err := p.connection.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	if err := DefineTopic(ch, p.Prefix, ProductsUpdated); err != nil {
		return err
	}
	return DefineTopic(ch, p.Prefix, ProductsCleared)
}

func (p *FeedPublisher) PublishProducts(products []types.Product) error {
	return SendChange(p.connection, p.Prefix, ProductsUpdated, products)
}

func (p *FeedPublisher) PublishClear() error {
	return SendChange(p.connection, p.Prefix, ProductsCleared, struct{}{})
}
