package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/milad/loadprofile/internal/config"
	"github.com/milad/loadprofile/internal/logging"
	"github.com/milad/loadprofile/internal/repo/csvrepo"
	"github.com/milad/loadprofile/internal/report"
	"github.com/milad/loadprofile/internal/rpc/profilev1"
	"github.com/milad/loadprofile/internal/service"
	grpcserver "github.com/milad/loadprofile/internal/transport/grpc"
)

func main() {
	var (
		addr       = flag.String("addr", envOr("GRPC_ADDR", ":9090"), "listen address")
		csvPath    = flag.String("csv", envOr("CSV_PATH", "meter_LP.csv"), "path to the load-profile CSV")
		configPath = flag.String("config", "", "YAML config file (default $"+config.PathEnv+")")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, logging.EncodingJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	repo, err := csvrepo.NewFromFile(*csvPath)
	if repo == nil {
		logger.Fatal("failed to load csv", zap.String("path", *csvPath), zap.Error(err))
	}
	// Bad rows are skipped; the server keeps going with the usable readings.
	rejected := csvrepo.RowErrors(err)
	for _, re := range rejected {
		logger.Warn("invalid row", zap.Int("line", re.Line), zap.String("text", re.Text), zap.Error(re.Err))
	}
	service.ObserveRejectedRows(len(rejected))

	tariff, err := cfg.ReportTariff()
	if err != nil {
		logger.Fatal("invalid tariff", zap.Error(err))
	}
	svc := service.NewProfileService(repo, report.NewReporter(tariff))
	api := grpcserver.New(svc)

	lis, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", *addr), zap.Error(err))
	}
	logger.Info("gRPC listening",
		zap.String("addr", *addr),
		zap.String("csv", *csvPath),
		zap.Int("readings", repo.Len()),
		zap.Int("rejected", len(rejected)),
	)

	g := grpc.NewServer()
	profilev1.RegisterProfileServiceServer(g, api)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(profilev1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(g, hs)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down gRPC")
		hs.Shutdown()
		ch := make(chan struct{})
		go func() {
			g.GracefulStop()
			close(ch)
		}()
		select {
		case <-ch:
		case <-time.After(5 * time.Second):
			g.Stop()
		}
	}()

	if err := g.Serve(lis); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

func envOr(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}
