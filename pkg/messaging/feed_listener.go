package messaging

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/matst80/shophub-catalog/pkg/catalog"
	"github.com/matst80/shophub-catalog/pkg/types"
)

// FeedListener applies product feed changes from the broker to the
// catalog. Updates always carry a full collection, never a partial patch.
// The catalog's change sequence decides whether a delivery still applies,
// so a stale in-flight feed load cannot overwrite a newer broker message.
type FeedListener struct {
	Catalog *catalog.Catalog
	Prefix  string
}

func (l *FeedListener) applyUpdate(d amqp.Delivery) error {
	var products []types.Product
	if err := json.Unmarshal(d.Body, &products); err != nil {
		return err
	}
	l.Catalog.SetProducts(products)
	log.Printf("Replaced product collection from broker, %d items", len(products))
	return nil
}

func (l *FeedListener) applyClear(_ amqp.Delivery) error {
	l.Catalog.Clear()
	log.Println("Cleared product collection from broker")
	return nil
}

func (l *FeedListener) Connect(url string) error {
	conn, err := amqp.Dial(url)
	if err != nil {
		return err
	}
	updateCh, err := conn.Channel()
	if err != nil {
		return err
	}
	if err := ListenToTopic(updateCh, l.Prefix, ProductsUpdated, l.applyUpdate); err != nil {
		return err
	}
	clearCh, err := conn.Channel()
	if err != nil {
		return err
	}
	return ListenToTopic(clearCh, l.Prefix, ProductsCleared, l.applyClear)
}
