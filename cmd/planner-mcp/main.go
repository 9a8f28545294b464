package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "planner/internal/adapters/mcp"
	"planner/internal/bootstrap"
	"planner/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("planner-mcp: %v", err)
	}

	objectsFlag := flag.String("objects", cfg.ObjectsPath, "path to the objects directory")
	apartmentFlag := flag.String("apartment", cfg.ApartmentPath, "apartment layout file")
	flag.Parse()

	cfg.ObjectsPath = *objectsFlag
	cfg.ApartmentPath = *apartmentFlag

	// stdout carries the protocol
	logger := bootstrap.NewLogger(cfg, os.Stderr)

	w, err := bootstrap.Open(cfg, logger, bootstrap.OpenOptions{})
	if err != nil {
		log.Fatalf("planner-mcp: %v", err)
	}
	defer w.Close()

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", w.Metrics.Handler())
		go func() {
			logger.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	mcpServer := server.NewMCPServer(
		"planner-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.Register(mcpServer, mcpadapter.NewSession(w))

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("planner-mcp: %v", err)
	}
}
