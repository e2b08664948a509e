package main

import (
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/cuemby/ironforged/internal/config"
	"github.com/cuemby/ironforged/internal/metrics"
	"github.com/cuemby/ironforged/internal/storage"
	"github.com/cuemby/ironforged/internal/supervisor"
	"github.com/cuemby/ironforged/internal/transport/grpcapi"
	"github.com/cuemby/ironforged/pkg/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the supervisor: gRPC transport, metrics endpoint, persistence",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return err
	}

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	registry := supervisor.NewRegistry(cfg.DataDir, cfg.BusCapacity, metrics.NewSink(), store)

	grpcServer, err := newGRPCServer(cfg)
	if err != nil {
		return err
	}
	grpcapi.RegisterSupervisorServer(grpcServer, grpcapi.NewServer(registry))

	listener, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return err
	}

	go func() {
		log.WithComponent("serve").Info().Str("address", cfg.GRPCAddress).Msg("gRPC transport listening")
		if err := grpcServer.Serve(listener); err != nil {
			log.WithComponent("serve").Error().Err(err).Msg("gRPC server stopped")
		}
	}()

	metricsServer := &http.Server{Addr: cfg.MetricsAddress, Handler: metrics.Handler()}
	go func() {
		log.WithComponent("serve").Info().Str("address", cfg.MetricsAddress).Msg("metrics endpoint listening")
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithComponent("serve").Error().Err(err).Msg("metrics server stopped")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.WithComponent("serve").Info().Msg("shutting down")
	grpcServer.GracefulStop()
	return metricsServer.Close()
}

func newGRPCServer(cfg config.Config) (*grpc.Server, error) {
	if cfg.TLSCertFile == "" || cfg.TLSKeyFile == "" {
		return grpc.NewServer(), nil
	}

	creds, err := grpcapi.LoadServerCredentials(cfg.TLSCertFile, cfg.TLSKeyFile)
	if err != nil {
		return nil, err
	}
	return grpc.NewServer(grpc.Creds(creds)), nil
}
