package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"rentroll/internal/auth"
	authStore "rentroll/internal/auth/store"
	"rentroll/internal/billing"
	billStore "rentroll/internal/billing/store"
	"rentroll/internal/building"
	buildingStore "rentroll/internal/building/store"
	"rentroll/internal/config"
	"rentroll/internal/dashboard"
	"rentroll/internal/database"
	rentrollHttp "rentroll/internal/http"
	authHandler "rentroll/internal/http/auth"
	billHandler "rentroll/internal/http/billing"
	buildingHandler "rentroll/internal/http/building"
	dashboardHandler "rentroll/internal/http/dashboard"
	importHandler "rentroll/internal/http/importcsv"
	tenantHandler "rentroll/internal/http/tenant"
	unitHandler "rentroll/internal/http/unit"
	"rentroll/internal/importer/readings"
	"rentroll/internal/tenant"
	tenantStore "rentroll/internal/tenant/store"
	"rentroll/internal/unit"
	unitStore "rentroll/internal/unit/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	var (
		billsRepo   = billStore.New(db)
		unitsRepo   = unitStore.New(db)
		tenantsRepo = tenantStore.New(db)

		authService     = auth.NewService(authStore.New(db), tokens)
		buildingService = building.NewService(buildingStore.New(db))
		unitService     = unit.NewService(unitsRepo)
		tenantService   = tenant.NewService(tenantsRepo)
		billService     = billing.NewService(billsRepo, tenantsRepo)
		dashService     = dashboard.NewService(billsRepo, unitsRepo)
	)

	var (
		authH      = authHandler.NewHandler(authService)
		buildingH  = buildingHandler.NewHandler(buildingService)
		unitH      = unitHandler.NewHandler(unitService)
		tenantH    = tenantHandler.NewHandler(tenantService)
		billH      = billHandler.NewHandler(billService)
		importH    = importHandler.NewHandler(readings.NewParser(), billService)
		dashboardH = dashboardHandler.NewHandler(dashService)
	)

	router := rentrollHttp.New(
		tokens,
		cfg.Server.AllowedOrigins,
		authH, buildingH, unitH, tenantH, billH, importH, dashboardH,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
