package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"toolscout/internal/models"
	"toolscout/internal/services"
	"toolscout/internal/utils"
)

const maxMessageLength = 1000

type AgentHandler struct {
	agentService   *services.AgentService
	missingService services.MissingRequestService
}

func NewAgentHandler(agentService *services.AgentService, missingService services.MissingRequestService) *AgentHandler {
	return &AgentHandler{
		agentService:   agentService,
		missingService: missingService,
	}
}

// Chat runs the assistant pipeline for one user message.
func (a *AgentHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Msg("Invalid request payload for Chat")
		utils.SendJSONError(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		utils.SendJSONError(w, "Message is required", http.StatusBadRequest)
		return
	}
	if len(message) > maxMessageLength {
		utils.SendJSONError(w, "Message must be at most 1000 characters", http.StatusBadRequest)
		return
	}

	resp := a.agentService.Handle(r.Context(), message)
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// GetMissingRequests lists queries that matched zero tools, most wanted first.
func (a *AgentHandler) GetMissingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := a.missingService.List(r.Context(), 100)
	if err != nil {
		log.Error().Err(err).Msg("Error listing missing requests")
		utils.SendJSONError(w, "Failed to retrieve missing requests", http.StatusInternalServerError)
		return
	}
	if requests == nil {
		requests = []models.MissingRequest{}
	}
	utils.RespondWithJSON(w, http.StatusOK, requests)
}
