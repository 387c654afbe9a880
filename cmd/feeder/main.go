package main

import (
	"context"
	"flag"
	"log"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/matst80/shophub-catalog/pkg/messaging"
	"github.com/matst80/shophub-catalog/pkg/store"
)

var clear = flag.Bool("clear", false, "publish a clear instead of the feed")
var rabbitUrl = os.Getenv("RABBIT_URL")
var feedUrl = os.Getenv("FEED_URL")
var topicPrefix = os.Getenv("TOPIC_PREFIX")

// feeder fetches the product feed and publishes it to every listening
// catalog instance.
func main() {
	flag.Parse()

	if rabbitUrl == "" {
		log.Fatalf("No rabbit url provided")
	}
	if topicPrefix == "" {
		topicPrefix = "shophub"
	}

	conn, err := amqp.Dial(rabbitUrl)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ, %v", err)
	}
	defer conn.Close()

	publisher, err := messaging.NewFeedPublisher(conn, topicPrefix)
	if err != nil {
		log.Fatalf("Failed to declare feed topics, %v", err)
	}

	if *clear {
		if err := publisher.PublishClear(); err != nil {
			log.Fatalf("Failed to publish clear, %v", err)
		}
		log.Println("Published clear")
		return
	}

	products, err := store.NewFeedClient(feedUrl).FetchProducts(context.Background())
	if err != nil {
		log.Fatalf("Failed to fetch product feed, %v", err)
	}
	if err := publisher.PublishProducts(products); err != nil {
		log.Fatalf("Failed to publish products, %v", err)
	}
	log.Printf("Published %d products", len(products))
}
