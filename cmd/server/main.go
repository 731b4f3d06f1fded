package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/folioapp/folio/internal/config"
	"github.com/folioapp/folio/internal/db"
	"github.com/folioapp/folio/internal/handlers"
	"github.com/folioapp/folio/internal/logger"
	"github.com/folioapp/folio/internal/repositories"
	"github.com/folioapp/folio/internal/services"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	zlog, err := logger.New(cfg.LogEnv)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer zlog.Sync()

	database, err := db.Connect(cfg.DBPath)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Health(); err != nil {
		zlog.Fatal("database health check failed", zap.Error(err))
	}
	zlog.Info("database connection established", zap.String("path", cfg.DBPath))

	// Repositories
	instrumentRepo := repositories.NewInstrumentRepository(database)
	masterRepo := repositories.NewMasterDataRepository(database)
	ledgerRepo := repositories.NewLedgerRepository(database)
	historyRepo := repositories.NewHistoryRepository(database)

	// Services
	cache := services.NewSnapshotCache(instrumentRepo, ledgerRepo, historyRepo)
	valuation := services.NewValuationService(cache, ledgerRepo, historyRepo, cfg.BaseCurrency)
	yahoo := services.NewYahooClient(cfg.Feeds, zlog)
	fund := services.NewFundChartClient(cfg.Feeds, zlog)
	marketData := services.NewMarketDataService(instrumentRepo, ledgerRepo, historyRepo, cache, yahoo, fund, cfg.BaseCurrency, zlog)

	// Handlers
	metaHandler := handlers.NewMetaHandler(cfg, valuation)
	instrumentHandler := handlers.NewInstrumentHandler(instrumentRepo, cache)
	masterHandler := handlers.NewMasterDataHandler(masterRepo, cfg.BaseCurrency)
	ledgerHandler := handlers.NewLedgerHandler(ledgerRepo, valuation, cache, cfg.BaseCurrency)
	reportingHandler := handlers.NewReportingHandler(valuation)
	priceHandler := handlers.NewPriceHandler(historyRepo)
	ingestionHandler := handlers.NewIngestionHandler(marketData)

	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"service": "folio-backend",
		})
	})

	router.HandleFunc("/config/get", metaHandler.HandleConfig)
	router.HandleFunc("/data/last", metaHandler.HandleLastData)

	router.HandleFunc("/instruments/list", instrumentHandler.HandleList)
	router.HandleFunc("/instruments/new", instrumentHandler.HandleNew)
	router.HandleFunc("/currencies/list", masterHandler.HandleCurrencyList)
	router.HandleFunc("/currencies/new", masterHandler.HandleCurrencyNew)
	router.HandleFunc("/types/list", masterHandler.HandleTypeList)
	router.HandleFunc("/types/new", masterHandler.HandleTypeNew)

	router.HandleFunc("/trades/list", ledgerHandler.HandleTradeList)
	router.HandleFunc("/trades/new", ledgerHandler.HandleTradeNew)
	router.HandleFunc("/deposits/list", ledgerHandler.HandleDepositList)
	router.HandleFunc("/deposits/new", ledgerHandler.HandleDepositNew)
	router.HandleFunc("/dividends/list", ledgerHandler.HandleDividendList)
	router.HandleFunc("/dividends/new", ledgerHandler.HandleDividendNew)
	router.HandleFunc("/staking/list", ledgerHandler.HandleStakingList)
	router.HandleFunc("/staking/new", ledgerHandler.HandleStakingNew)
	router.HandleFunc("/values/list", ledgerHandler.HandleValueList)
	router.HandleFunc("/values/new", ledgerHandler.HandleValueNew)

	router.HandleFunc("/overview/get", reportingHandler.HandleOverview)
	router.HandleFunc("/performance/get", reportingHandler.HandlePerformance)
	router.HandleFunc("/detail", reportingHandler.HandleDetail)
	router.HandleFunc("/prices/get", priceHandler.HandleGet)

	router.HandleFunc("/historical/update", ingestionHandler.HandleHistoricalUpdate)
	router.HandleFunc("/fx/update", ingestionHandler.HandleFxUpdate)

	handler := corsMiddleware(requestLogMiddleware(zlog)(router))

	zlog.Info("server starting", zap.String("port", cfg.ServerPort))
	if err := http.ListenAndServe(":"+cfg.ServerPort, handler); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogMiddleware(zlog *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()
			next.ServeHTTP(w, r)
			zlog.Info("request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
