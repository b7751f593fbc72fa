package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"toolscout/internal/models"
	"toolscout/internal/services"
	"toolscout/internal/utils"
)

type ToolHandler struct {
	toolService services.ToolService
}

func NewToolHandler(toolService services.ToolService) *ToolHandler {
	return &ToolHandler{toolService: toolService}
}

func (h *ToolHandler) GetTools(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	page := int64(1)
	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		parsed, err := strconv.ParseInt(pageParam, 10, 64)
		if err != nil || parsed < 1 {
			utils.SendJSONError(w, "Page must be a positive integer", http.StatusBadRequest)
			return
		}
		page = parsed
	}

	tools, err := h.toolService.GetTools(r.Context(), category, 20, page)
	if err != nil {
		utils.SendJSONError(w, "Failed to retrieve tools", http.StatusInternalServerError)
		return
	}
	if tools == nil {
		tools = []models.ToolResult{}
	}
	utils.RespondWithJSON(w, http.StatusOK, tools)
}

func (h *ToolHandler) GetToolByID(w http.ResponseWriter, r *http.Request) {
	toolID, err := utils.GetObjectIDFromVars(w, r, "id")
	if err != nil {
		return
	}

	tool, err := h.toolService.GetToolByID(r.Context(), toolID)
	if err != nil {
		if err.Error() == "tool not found" {
			utils.SendJSONError(w, "Tool not found", http.StatusNotFound)
		} else {
			log.Error().Err(err).Str("tool_id", toolID.Hex()).Msg("Error fetching tool")
			utils.SendJSONError(w, "Failed to retrieve tool", http.StatusInternalServerError)
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tool)
}

func (h *ToolHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.toolService.GetCategories(r.Context())
	if err != nil {
		utils.SendJSONError(w, "Failed to retrieve categories", http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, categories)
}
