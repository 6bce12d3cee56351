package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kjeyarn/lending-gateway/gateway/config"
	"github.com/kjeyarn/lending-gateway/gateway/internal/handler"
	"github.com/kjeyarn/lending-gateway/gateway/internal/server"
	"github.com/kjeyarn/lending-gateway/pkg/auth0"
	"github.com/kjeyarn/lending-gateway/pkg/kafka"
	"github.com/kjeyarn/lending-gateway/pkg/logger"
)

func Run(cfg config.Config) { //nolint:gocritic
	log := logger.NewLogger(cfg.Log, "gateway")

	tokenValidator, err := auth0.NewValidator(cfg.Auth0)
	if err != nil {
		log.Fatal("auth0 validator", zap.Error(err))
	}

	actionLog := handler.NewNopActionLog()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewAsyncProducer(cfg.Kafka)
		if err != nil {
			log.DPanic("kafka", zap.Error(err))
		} else {
			defer func() {
				if err := producer.Close(); err != nil {
					log.Warn("kafka producer close", zap.Error(err))
				}
			}()
			actionLog = handler.NewActionLog(log.Named("audit"), producer, cfg.Kafka.ActionTopic)
		}
	}

	h := handler.New(log, cfg, actionLog)

	srv := server.NewServer(cfg.Server, h.NewRouter(tokenValidator))
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
