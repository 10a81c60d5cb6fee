// README: Entry point; loads config, wires services, starts HTTP server and
// the background view synchronizer.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swiftdrop/internal/auth"
	"swiftdrop/internal/config"
	httptransport "swiftdrop/internal/http"
	"swiftdrop/internal/infra"
	"swiftdrop/internal/ingest"
	"swiftdrop/internal/logging"
	"swiftdrop/internal/maps"
	"swiftdrop/internal/modules/mission"
	"swiftdrop/internal/modules/presence"
	"swiftdrop/internal/modules/profile"
	"swiftdrop/internal/poll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	log := logging.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Error("postgres init failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password)
	defer redisClient.Close()

	profileStore := profile.NewStore(dbPool)

	var geocoder maps.Geocoder
	if cfg.Maps.GoogleKey != "" {
		geocoder, err = maps.NewGoogleGeocoder(cfg.Maps.GoogleKey)
		if err != nil {
			log.Error("google maps init failed", "error", err)
			os.Exit(1)
		}
	} else {
		geocoder = maps.NewNominatimClient(cfg.Maps.NominatimEndpoint)
	}
	search := maps.NewSearchService(geocoder, log)
	router := maps.NewRouteService(cfg.Maps.OSRMEndpoint)

	missionStore := mission.NewPGStore(dbPool)
	missionSvc := mission.NewService(missionStore, router, log)

	var publisher presence.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := ingest.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		publisher = producer
	}
	presenceStore := presence.NewRedisStore(redisClient)
	presenceSvc := presence.NewService(presenceStore, profileStore, publisher, log)

	gateway := auth.NewGateway(
		auth.NewPGUserStore(dbPool),
		auth.NewRedisSessionStore(redisClient),
		cfg.Session.TTL,
		log,
	)

	views := poll.NewSynchronizer(missionSvc, profileStore, cfg.Poll.Interval, log)
	go views.Run(ctx)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Gateway:        gateway,
		Missions:       missionSvc,
		Presence:       presenceSvc,
		Profiles:       profileStore,
		Search:         search,
		Views:          views,
		DefaultCountry: cfg.Maps.Country,
		Log:            log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
