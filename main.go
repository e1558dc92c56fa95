package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"teamlink-service/internal/chatwindow"
	"teamlink-service/internal/db"
	"teamlink-service/internal/directory"
	"teamlink-service/internal/handlers"
	"teamlink-service/internal/ledger"
	"teamlink-service/internal/messaging"
	"teamlink-service/internal/middleware"
	"teamlink-service/internal/observability"
	"teamlink-service/internal/rabbitmq"
	"teamlink-service/internal/store"
	"teamlink-service/internal/telemetry"
)

const serviceName = "teamlink-service"

func main() {
	_ = godotenv.Load()

	shutdownTracing := observability.InitTracing(context.Background(), serviceName, getEnv("OTLP_ENDPOINT", ""))
	defer func() {
		_ = shutdownTracing(context.Background())
	}()

	// A missing database is not fatal: collections lazily fall back to
	// deterministic fixtures, keeping a usable demo/offline session.
	var connLive store.LiveConnectionStore
	var msgLive store.LiveMessageStore
	var profLive store.LiveProfileStore
	if database, err := db.Connect(); err != nil {
		log.Printf("database unavailable, collections will use fixtures: %v", err)
	} else {
		connLive = store.NewPgConnections(database)
		msgLive = store.NewPgMessages(database)
		profLive = store.NewPgProfiles(database)
	}

	connections := store.NewFallbackConnections(connLive, store.NewFixtureConnections())
	messages := store.NewFallbackMessages(msgLive, store.NewFixtureMessages())
	profiles := store.NewFallbackProfiles(profLive, store.NewFixtureProfiles())

	fixturesActive := func() bool {
		return connections.Mode() == store.ModeFixtures ||
			messages.Mode() == store.ModeFixtures ||
			profiles.Mode() == store.ModeFixtures
	}

	publisher := rabbitmq.NewPublisher(getEnv("AMQP_URL", ""), getEnv("AMQP_EXCHANGE", "teamlink.events"))
	defer publisher.Close()
	log.Printf("notification publisher mode=%s", rabbitmq.PublisherMode(publisher))

	notifier := telemetry.NewNotifier(publisher, serviceName, getEnv("ENVIRONMENT", "development"))

	connLedger := ledger.New(connections, notifier)
	messenger := messaging.New(messages, notifier)
	windows := chatwindow.NewManager(chatwindow.DefaultLimit)
	dir := directory.New(profiles, fixturesActive)

	connectionHandler := handlers.NewConnectionHandler(connLedger, dir)
	messageHandler := handlers.NewMessageHandler(messenger)
	windowHandler := handlers.NewWindowHandler(windows, dir)
	profileHandler := handlers.NewProfileHandler(dir)

	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	authMiddleware := middleware.AuthMiddleware(getEnv("JWT_SECRET", "dev-secret"))

	router.POST("/connections", authMiddleware, connectionHandler.RequestConnection)
	router.GET("/connections", authMiddleware, connectionHandler.ListConnections)
	router.POST("/connections/:connection_id/accept", authMiddleware, connectionHandler.AcceptConnection)
	router.POST("/connections/:connection_id/reject", authMiddleware, connectionHandler.RejectConnection)
	router.GET("/connections/with/:user_id", authMiddleware, connectionHandler.ConnectionStatus)

	router.POST("/messages", authMiddleware, messageHandler.PostMessage)
	router.GET("/messages/:user_id", authMiddleware, messageHandler.GetConversation)
	router.POST("/messages/:user_id/read", authMiddleware, messageHandler.MarkConversationRead)

	router.POST("/windows", authMiddleware, windowHandler.OpenWindow)
	router.GET("/windows", authMiddleware, windowHandler.ListWindows)
	router.DELETE("/windows/:peer_id", authMiddleware, windowHandler.CloseWindow)

	router.GET("/profiles/:user_id", authMiddleware, profileHandler.GetProfile)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterHealthRoutes(router, func() map[string]string {
		return map[string]string{
			"connections": string(connections.Mode()),
			"messages":    string(messages.Mode()),
			"profiles":    string(profiles.Mode()),
		}
	})

	port := getEnv("PORT", "8086")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
