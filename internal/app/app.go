// Package app configures and runs application.
package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"mediarelay/config"
	amqprpc "mediarelay/internal/controller/amqp_rpc"
	v1 "mediarelay/internal/controller/http/v1"
	"mediarelay/internal/usecase/sfu"
	"mediarelay/pkg/httpserver"
	"mediarelay/pkg/logger"
	"mediarelay/pkg/rabbitmq/rmq_rpc/server"
	"mediarelay/pkg/rtcengine/pion"
)

// Run creates objects via constructors.
func Run(cfg *config.Config) {
	l := logger.New(cfg.Log.Level)

	if k := len(cfg.RTC.SealKey); k != 0 && k != 16 && k != 24 && k != 32 {
		l.Fatal("app - Run - seal key must be 16, 24 or 32 bytes, got %d", k)
	}

	// Transport engine
	engine, err := pion.NewEngine(pion.Config{
		ICEServers: cfg.RTC.ICEServers,
		PortMin:    cfg.RTC.PortMin,
		PortMax:    cfg.RTC.PortMax,
		AudioMime:  cfg.RTC.AudioCodec,
		VideoMime:  cfg.RTC.VideoCodec,
	}, l)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - pion.NewEngine: %w", err))
	}

	// Use case
	relay := sfu.New(l, sfu.AdaptationInterval(cfg.RTC.AdaptationInterval))

	// RabbitMQ RPC Server
	rmqRouter := amqprpc.NewRouter(relay)

	rmqServer, err := server.New(cfg.RMQ.URL, cfg.RMQ.ServerExchange, rmqRouter, l)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - server.New: %w", err))
	}

	// HTTP Server
	handler := gin.New()
	v1.NewRouter(handler, l, relay, engine, v1.SignalingConfig{
		SealKey:        []byte(cfg.RTC.SealKey),
		PreferredCodec: cfg.RTC.PreferredCodec,
	})
	httpServer := httpserver.New(handler, httpserver.Port(cfg.HTTP.Port))

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: " + s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	case err = <-rmqServer.Notify():
		l.Error(fmt.Errorf("app - Run - rmqServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	err = rmqServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - rmqServer.Shutdown: %w", err))
	}

	relay.Shutdown()
}
