// internal/handler/campaign_handler.go
package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agentuity/agent-social-marketing-v1/internal/service"
)

// CampaignHandler holds the dependencies for campaign stats handlers
type CampaignHandler struct {
	Service *service.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler backed by the service
func NewCampaignHandler(svc *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		Service: svc,
	}
}

// GetCampaignStatsHandler returns one campaign with its scheduling stats
func (h *CampaignHandler) GetCampaignStatsHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	log.Println("📥 Stats requested for campaign ID:", id)

	details, err := h.Service.GetCampaignWithStats(id)
	if err != nil {
		log.Println("❌ Error fetching campaign:", err)
		http.Error(w, "failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(details)
}
