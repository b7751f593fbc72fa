package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"toolscout/internal/handlers"
	"toolscout/internal/middlewares"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := mux.NewRouter()

	r.Use(middlewares.CorsMiddleware)
	r.Use(middlewares.RateLimit)
	r.Use(middlewares.Prometheus)

	ch := handlers.NewCommonHandler(s.db)
	r.HandleFunc("/", ch.HelloWorldHandler)
	r.HandleFunc("/health", ch.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())

	s.registerToolRoutes(r)
	s.registerAgentRoutes(r)

	return r
}

func (s *Server) registerToolRoutes(r *mux.Router) {
	th := handlers.NewToolHandler(s.toolService)

	r.HandleFunc("/api/tools", th.GetTools).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/tools/{id}", th.GetToolByID).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/categories", th.GetCategories).Methods("GET", "OPTIONS")
}

func (s *Server) registerAgentRoutes(r *mux.Router) {
	ah := handlers.NewAgentHandler(s.agentService, s.missingService)

	r.HandleFunc("/api/agent/chat", ah.Chat).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/missing-requests", ah.GetMissingRequests).Methods("GET", "OPTIONS")
}
