package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"

	"mealiemcp"
	"mealiemcp/audit"
	"mealiemcp/mcpserver"
	"mealiemcp/mealie"
	"mealiemcp/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Starts the MCP server on the configured transport.

stdio serves a single editor or agent session over stdin and stdout.
http serves many sessions over streamable HTTP and adds a /healthz
endpoint next to the MCP path.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// mcpRunner is the slice of the server the command needs, satisfied by
// both the plain and the instrumented variants.
type mcpRunner interface {
	Run(ctx context.Context) error
	RunHTTP(ctx context.Context, host string, port int, path string) error
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var mealieCfg mealiemcp.MealieConfig
	if err := envdecode.Decode(&mealieCfg); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var serverCfg mealiemcp.ServerConfig
	if err := envdecode.Decode(&serverCfg); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	var auditCfg mealiemcp.AuditConfig
	if err := envdecode.Decode(&auditCfg); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}

	profile, err := tools.ParseProfile(serverCfg.Profile)
	if err != nil {
		slog.Error("SETUP: Invalid tool profile", "error", err)
		return err
	}

	// The stdio transport owns stdout, so audit records must go elsewhere.
	if serverCfg.Transport == "stdio" && strings.EqualFold(auditCfg.Mode, "stdout") {
		err := fmt.Errorf("audit mode %q would corrupt the stdio transport, use file or s3", auditCfg.Mode)
		slog.Error("SETUP: Invalid audit mode", "error", err)
		return err
	}

	client := mealie.New(mealieCfg.BaseURL, mealieCfg.APIToken, &http.Client{Timeout: mealieCfg.HTTPTimeout})

	registry, err := tools.NewRegistry(client, profile)
	if err != nil {
		slog.Error("SETUP: Failed to build tool registry", "error", err)
		return err
	}
	slog.Info("SETUP: Tool registry ready", "profile", profile, "tools", len(registry.GetTools()), "mealie_url", mealieCfg.BaseURL)

	auditor, auditFlush, err := newAuditLogger(ctx, auditCfg, string(profile))
	if err != nil {
		slog.Error("SETUP: Failed to set up audit logging", "error", err)
		return err
	}
	defer func() {
		if err := auditFlush(context.Background()); err != nil {
			slog.Error("FINAL: Failed to flush audit log", "error", err)
		}
	}()

	var srv mcpRunner
	if serverCfg.OtelEnabled {
		tracerProvider, meterProvider, otelShutdown, err := mealiemcp.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return err
		}
		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				slog.Error("FINAL: Failed to shut down OpenTelemetry", "error", err)
			}
		}()

		tracer := tracerProvider.Tracer(mealiemcp.TracerNameServer)
		meter := meterProvider.Meter(mealiemcp.TracerNameServer)
		srv = mcpserver.NewInstrumented(registry, auditor, tracer, meter)
	} else {
		srv = mcpserver.New(registry, auditor)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("SERVER: Received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	switch serverCfg.Transport {
	case "stdio":
		slog.Info("SETUP: Starting MCP server on stdio")
		err = srv.Run(ctx)
	case "http":
		err = srv.RunHTTP(ctx, serverCfg.HTTPHost, serverCfg.HTTPPort, serverCfg.HTTPPath)
	default:
		err := fmt.Errorf("unknown transport %q, expected stdio or http", serverCfg.Transport)
		slog.Error("SETUP: Invalid transport", "error", err)
		return err
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("SERVER: Server stopped with error", "error", err)
		return err
	}

	slog.Info("FINAL: Server shut down cleanly")
	return nil
}

// newAuditLogger builds the audit logger for the configured mode. The
// returned flush must be called after the server stops so buffered
// session records reach their sink.
func newAuditLogger(ctx context.Context, cfg mealiemcp.AuditConfig, profile string) (mealiemcp.AuditLogger, func(context.Context) error, error) {
	noFlush := func(context.Context) error { return nil }

	switch strings.ToLower(cfg.Mode) {
	case "", "off":
		return mealiemcp.NewNoOpAuditLogger(), noFlush, nil
	case "stdout":
		return mealiemcp.NewStdoutAuditLogger(), noFlush, nil
	case "file":
		path := mealiemcp.NewAuditLogFilePath(cfg.Dir, profile)
		logger := audit.NewSessionLogger(audit.NewFileSink(path))
		slog.Info("SETUP: Audit log will be stored on shutdown", "path", path)
		return logger, logger.Flush, nil
	case "s3":
		if cfg.S3Bucket == "" {
			return nil, nil, fmt.Errorf("AUDIT_S3_BUCKET is required when AUDIT_MODE is s3")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		logger := audit.NewSessionLogger(audit.NewS3Sink(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix))
		slog.Info("SETUP: Audit log will be stored on shutdown", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return logger, logger.Flush, nil
	}
	return nil, nil, fmt.Errorf("unknown audit mode %q", cfg.Mode)
}
