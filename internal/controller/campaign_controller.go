// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "errors"
    "net/http"
    "strings"

    "github.com/go-chi/chi/v5"

    appErrors "github.com/agentuity/agent-social-marketing-v1/internal/errors"
    "github.com/agentuity/agent-social-marketing-v1/internal/model"
    "github.com/agentuity/agent-social-marketing-v1/internal/service"
)


type CampaignController struct {
    CampaignService *service.CampaignService
}

// writeError maps typed service errors onto HTTP statuses
func writeError(w http.ResponseWriter, err error) {
    var notFound *appErrors.ErrCampaignNotFound
    if errors.As(err, &notFound) {
        http.Error(w, err.Error(), http.StatusNotFound)
        return
    }

    var badTransition *appErrors.ErrInvalidTransition
    if errors.As(err, &badTransition) {
        http.Error(w, err.Error(), http.StatusConflict)
        return
    }

    var precondition *appErrors.ErrPrecondition
    if errors.As(err, &precondition) {
        http.Error(w, err.Error(), http.StatusBadRequest)
        return
    }

    http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
    var body struct {
        Topic       string `json:"topic"`
        Description string `json:"description"`
        PublishDate string `json:"publishDate"`
    }
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if strings.TrimSpace(body.Topic) == "" {
        http.Error(w, "topic is required", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.CreateCampaign(body.Topic, body.Description, body.PublishDate)
    if err != nil {
        writeError(w, err)
        return
    }

    w.WriteHeader(http.StatusCreated)
    json.NewEncoder(w).Encode(campaign)
}


func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    topic := r.URL.Query().Get("topic")

    // Topic filter returns at most one match
    if topic != "" {
        campaign, err := c.CampaignService.FindCampaignByTopic(topic)
        if err != nil {
            writeError(w, err)
            return
        }

        data := []*model.Campaign{}
        if campaign != nil {
            data = append(data, campaign)
        }
        json.NewEncoder(w).Encode(map[string]interface{}{
            "data":  data,
            "count": len(data),
        })
        return
    }

    campaigns, err := c.CampaignService.ListCampaigns()
    if err != nil {
        writeError(w, err)
        return
    }

    // Return JSON response
    json.NewEncoder(w).Encode(map[string]interface{}{
        "data":  campaigns,
        "count": len(campaigns),
    })
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    campaign, err := c.CampaignService.GetCampaign(id)
    if err != nil {
        writeError(w, err)
        return
    }

    json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    if err := c.CampaignService.DeleteCampaign(id); err != nil {
        writeError(w, err)
        return
    }

    json.NewEncoder(w).Encode(map[string]interface{}{
        "deleted": id,
    })
}

func (c *CampaignController) AttachResearch(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    var body model.ResearchData
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if strings.TrimSpace(body.Summary) == "" {
        http.Error(w, "research summary is required", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.AttachResearch(id, &body)
    if err != nil {
        writeError(w, err)
        return
    }

    json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) AttachContent(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    var body model.CampaignContent
    if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
        http.Error(w, "invalid body", http.StatusBadRequest)
        return
    }
    if body.IsEmpty() {
        http.Error(w, "content must include at least one post or thread", http.StatusBadRequest)
        return
    }

    campaign, err := c.CampaignService.AttachContent(id, &body)
    if err != nil {
        writeError(w, err)
        return
    }

    json.NewEncoder(w).Encode(campaign)
}


func (c *CampaignController) ScheduleCampaign(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")

    campaign, err := c.CampaignService.QueueSchedule(id)
    if err != nil {
        writeError(w, err)
        return
    }

    // The worker flips the status to scheduling/active, this response only
    // confirms the job is on the queue
    w.WriteHeader(http.StatusAccepted)
    json.NewEncoder(w).Encode(map[string]interface{}{
        "campaign_id": campaign.ID,
        "status":      campaign.Status,
        "queued":      true,
    })
}
