package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	commissionservice "raspepix/contexts/affiliate-network/commission-service"
	editionsimulator "raspepix/contexts/finance-core/edition-simulator"
	editionservice "raspepix/contexts/lottery-core/edition-service"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "raspepix/internal/platform/httpserver/docs"
)

type Server struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	addr        string
	commissions commissionservice.Module
	simulator   editionsimulator.Module
	editions    editionservice.Module
}

func New(
	commissions commissionservice.Module,
	simulator editionsimulator.Module,
	editions editionservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:         http.NewServeMux(),
		logger:      logger,
		addr:        addr,
		commissions: commissions,
		simulator:   simulator,
		editions:    editions,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("GET /api/v1/affiliates/performance", s.handleAffiliatePerformance)
	s.mux.HandleFunc("GET /api/v1/affiliates/performance/report.xlsx", s.handleAffiliatePerformanceReport)
	s.mux.HandleFunc("PUT /api/v1/affiliates/{affiliate_id}/commission-rate", s.handleSetCommissionRate)
	s.mux.HandleFunc("PUT /api/v1/affiliates/commission-rate/bulk", s.handleSetCommissionRatesBulk)
	s.mux.HandleFunc("PUT /api/v1/affiliates/commission-rate/all-active", s.handleSetAllActiveCommissionRate)
	s.mux.HandleFunc("GET /api/v1/affiliates/{affiliate_id}/referral-qr", s.handleReferralQR)

	s.mux.HandleFunc("POST /api/v1/simulations", s.handleSimulateEdition)
	s.mux.HandleFunc("POST /api/v1/cost-plans", s.handleCreateCostPlan)
	s.mux.HandleFunc("GET /api/v1/cost-plans", s.handleListCostPlans)
	s.mux.HandleFunc("GET /api/v1/cost-plans/{plan_id}", s.handleGetCostPlan)
	s.mux.HandleFunc("PUT /api/v1/cost-plans/{plan_id}", s.handleUpdateCostPlan)

	s.mux.HandleFunc("POST /api/v1/editions", s.handleCreateEdition)
	s.mux.HandleFunc("GET /api/v1/editions", s.handleListEditions)
	s.mux.HandleFunc("GET /api/v1/editions/{edition_id}", s.handleGetEdition)
	s.mux.HandleFunc("POST /api/v1/editions/{edition_id}/activate", s.handleActivateEdition)
	s.mux.HandleFunc("POST /api/v1/editions/{edition_id}/close", s.handleCloseEdition)
	s.mux.HandleFunc("POST /api/v1/editions/{edition_id}/instant-prizes", s.handleGenerateInstantPrizes)
	s.mux.HandleFunc("POST /api/v1/editions/{edition_id}/winning-numbers", s.handleImportWinningNumbers)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
