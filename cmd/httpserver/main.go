package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/milad/loadprofile/internal/config"
	"github.com/milad/loadprofile/internal/logging"
	"github.com/milad/loadprofile/internal/rpc/profilev1"
	httpserver "github.com/milad/loadprofile/internal/transport/http"
)

func main() {
	var (
		addr       = flag.String("addr", envOr("HTTP_ADDR", ":8080"), "listen address")
		grpcAddr   = flag.String("grpc", envOr("GRPC_TARGET", "127.0.0.1:9090"), "gRPC target host:port")
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := grpc.NewClient(*grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		logger.Fatal("dial gRPC", zap.String("target", *grpcAddr), zap.Error(err))
	}
	defer conn.Close()

	// Reduce docker-compose race: wait a bit for gRPC to be ready.
	wait := envDurationMs("GRPC_WAIT_TIMEOUT_MS", 20_000)
	waitForGRPC(ctx, conn, wait, logger)

	client := profilev1.NewProfileServiceClient(conn)
	srv := httpserver.New(client, cfg.ChartOptions(), logger)

	h := &http.Server{
		Addr:              *addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", *addr), zap.Error(err))
	}
	logger.Info("HTTP listening", zap.String("addr", *addr), zap.String("grpc_target", *grpcAddr))

	go func() {
		<-ctx.Done()
		logger.Info("shutting down HTTP")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Shutdown(shutdownCtx)
	}()

	if err := h.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve", zap.Error(err))
	}
}

func envOr(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func envDurationMs(k string, fallbackMs int) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return time.Duration(fallbackMs) * time.Millisecond
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return time.Duration(fallbackMs) * time.Millisecond
	}
	return time.Duration(n) * time.Millisecond
}

// waitForGRPC polls the health service until the profile service reports
// SERVING or maxWait elapses. It never fails; the gateway maps later
// upstream errors to 502/504.
func waitForGRPC(ctx context.Context, conn *grpc.ClientConn, maxWait time.Duration, logger *zap.Logger) {
	if maxWait <= 0 {
		return
	}

	hc := healthpb.NewHealthClient(conn)
	deadline := time.Now().Add(maxWait)

	backoff := 100 * time.Millisecond
	for {
		if ctx.Err() != nil {
			return
		}

		reqCtx, cancel := context.WithTimeout(ctx, time.Second)
		resp, err := hc.Check(reqCtx, &healthpb.HealthCheckRequest{Service: profilev1.ServiceName})
		cancel()
		if err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING {
			logger.Info("gRPC is ready")
			return
		}
		if err == nil {
			err = fmt.Errorf("status %s", resp.GetStatus())
		}

		if time.Now().After(deadline) {
			logger.Warn("gRPC not ready; continuing anyway", zap.Duration("waited", maxWait), zap.Error(err))
			return
		}

		time.Sleep(backoff)
		backoff = min(backoff*2, time.Second)
	}
}
