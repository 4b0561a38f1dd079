package main

import (
	"context"

	"shareit/internal/gateway"
	"shareit/internal/health"
	"shareit/pkg/app"
	"shareit/pkg/client"
	"shareit/pkg/clock"
	"shareit/pkg/config"
)

const ServiceName = "shareit-gateway"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting ShareIt gateway", "upstream", cfg.ServerURL)

	server := client.NewServerClient(client.NewHttpClient(cfg.ServerURL, cfg.ForwardTimeout))
	if err := server.WaitForHealthy(context.Background(), cfg.UpstreamWaitTimeout); err != nil {
		cfg.Log.Warn("Server is not healthy yet, starting anyway", "upstream", cfg.ServerURL, "error", err)
	}
	handler := gateway.NewHandler(server, gateway.NewValidators(), clock.System(), cfg.Log)

	gatewayApp := app.NewApplication(cfg)
	gatewayApp.SetApp(health.NewHandler("shareit-server", server.Ping, cfg.Log), handler)
	gatewayApp.Run()
}
