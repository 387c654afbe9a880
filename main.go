package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matst80/shophub-catalog/pkg/catalog"
	"github.com/matst80/shophub-catalog/pkg/insights"
	"github.com/matst80/shophub-catalog/pkg/messaging"
	"github.com/matst80/shophub-catalog/pkg/server"
	"github.com/matst80/shophub-catalog/pkg/store"
)

var enableProfiling = flag.Bool("profiling", true, "enable profiling endpoints")
var feedUrl = os.Getenv("FEED_URL")
var openAiKey = os.Getenv("OPENAI_API_KEY")
var openAiUrl = os.Getenv("OPENAI_URL")
var openAiModel = os.Getenv("OPENAI_MODEL")
var redisUrl = os.Getenv("REDIS_URL")
var redisPassword = os.Getenv("REDIS_PASSWORD")
var rabbitUrl = os.Getenv("RABBIT_URL")
var topicPrefix = os.Getenv("TOPIC_PREFIX")
var listenAddress = ":8080"
var debugAddress = ":8081"

var cat = catalog.New()
var feed = store.NewFeedClient(feedUrl)
var srv = server.NewWebServer(cat, feed, insights.NewOpenAIClient(openAiKey, openAiModel, openAiUrl))

var done atomic.Bool

func LoadCatalog(wg *sync.WaitGroup) {
	if redisUrl != "" {
		srv.Cache = server.NewCache(redisUrl, redisPassword, 0)
		log.Printf("Response cache enabled, url: %s", redisUrl)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := cat.Load(context.Background(), feed)
		if err != nil {
			// Empty collection is a normal state; the reload endpoint
			// makes this recoverable.
			log.Printf("Failed to load product feed %v", err)
		} else {
			log.Printf("Product feed loaded, %d items", cat.Len())
		}

		if rabbitUrl != "" {
			if topicPrefix == "" {
				topicPrefix = "shophub"
			}
			listener := messaging.FeedListener{
				Catalog: cat,
				Prefix:  topicPrefix,
			}
			if err := listener.Connect(rabbitUrl); err != nil {
				log.Printf("Failed to connect to RabbitMQ, %v", err)
			} else {
				log.Print("Listening for feed changes on RabbitMQ")
			}
		}

		done.Store(true)
	}()
}

func main() {
	flag.Parse()

	wg := sync.WaitGroup{}
	LoadCatalog(&wg)

	debugMux := http.NewServeMux()
	debugMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if !done.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("not ready"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	go func() {
		mux := http.NewServeMux()
		log.Println("Waiting for product feed to load...")
		wg.Wait()
		log.Println("Starting api")

		mux.Handle("/api/", http.StripPrefix("/api", srv.Handler()))
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

		log.Printf("Starting server %v", listenAddress)
		log.Fatal(http.ListenAndServe(listenAddress, mux))
	}()

	debugMux.Handle("/metrics", promhttp.Handler())

	if enableProfiling != nil && *enableProfiling {
		log.Println("Profiling enabled")
		debugMux.HandleFunc("/debug/pprof/", pprof.Index)
		debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
		debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	}
	log.Printf("Starting debug server %v", debugAddress)
	log.Fatal(http.ListenAndServe(debugAddress, debugMux))
}
