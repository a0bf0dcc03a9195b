package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agentuity/agent-social-marketing-v1/internal/controller"
	"github.com/agentuity/agent-social-marketing-v1/internal/handler"
	"github.com/agentuity/agent-social-marketing-v1/internal/model"
	"github.com/agentuity/agent-social-marketing-v1/internal/queue"
	"github.com/agentuity/agent-social-marketing-v1/internal/repository"
	"github.com/agentuity/agent-social-marketing-v1/internal/service"
)

// --- Mock draft client ---

// MockDraftClient answers every draft with a fixed ID
type MockDraftClient struct {
	mu    sync.Mutex
	ID    string
	calls int
}

func (m *MockDraftClient) CreateDraft(content, platform, scheduleDate string, threadify bool) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.ID != "" {
		return m.ID, nil
	}
	return fmt.Sprintf("draft-%d", m.calls), nil
}

// newTestRouter wires the real service stack onto the same routes the
// server binary registers
func newTestRouter(t *testing.T) (*chi.Mux, *service.CampaignService) {
	t.Helper()

	repo := repository.NewCampaignRepository(repository.NewInMemoryKV())
	t.Cleanup(repo.Close)

	q := queue.NewInMemoryQueue()

	svc := &service.CampaignService{
		CampaignRepo: repo,
		Typefully:    &MockDraftClient{ID: "d1"},
		Queue:        q,
	}
	queue.StartCampaignScheduleSubscriber(q, svc)

	ctrl := &controller.CampaignController{CampaignService: svc}
	statsHandler := handler.NewCampaignHandler(svc)

	r := chi.NewRouter()
	r.Post("/campaigns", ctrl.CreateCampaign)
	r.Get("/campaigns", ctrl.ListCampaigns)
	r.Get("/campaigns/{id}", ctrl.GetCampaign)
	r.Delete("/campaigns/{id}", ctrl.DeleteCampaign)
	r.Post("/campaigns/{id}/research", ctrl.AttachResearch)
	r.Post("/campaigns/{id}/content", ctrl.AttachContent)
	r.Post("/campaigns/{id}/schedule", ctrl.ScheduleCampaign)
	r.Get("/campaigns/{id}/stats", statsHandler.GetCampaignStatsHandler)

	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndGetCampaign(t *testing.T) {
	r, _ := newTestRouter(t)

	// Create
	w := doJSON(t, r, "POST", "/campaigns", map[string]interface{}{
		"topic":       "Spring launch",
		"description": "Q2 push",
		"publishDate": "tomorrow",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created model.Campaign
	if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a campaign ID")
	}
	if created.Status != model.StatusPlanning {
		t.Errorf("expected status planning, got %s", created.Status)
	}

	// Fetch it back
	w = doJSON(t, r, "GET", "/campaigns/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got model.Campaign
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.Topic != "Spring launch" {
		t.Errorf("expected the stored topic, got %q", got.Topic)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/campaigns", map[string]interface{}{"description": "no topic"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a missing topic, got %d", w.Code)
	}

	req := httptest.NewRequest("POST", "/campaigns", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
}

func TestGetCampaignNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "GET", "/campaigns/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	w = doJSON(t, r, "DELETE", "/campaigns/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on delete, got %d", w.Code)
	}
}

func TestCampaignPipelineOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	// Create
	w := doJSON(t, r, "POST", "/campaigns", map[string]interface{}{
		"topic":       "Full pipeline",
		"publishDate": "tomorrow",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	var created model.Campaign
	json.NewDecoder(w.Body).Decode(&created)

	// Attach research
	w = doJSON(t, r, "POST", "/campaigns/"+created.ID+"/research", map[string]interface{}{
		"summary":   "people want this",
		"keyPoints": []string{"a", "b"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for research, got %d: %s", w.Code, w.Body.String())
	}

	// Attach content
	w = doJSON(t, r, "POST", "/campaigns/"+created.ID+"/content", map[string]interface{}{
		"linkedInPosts": []map[string]string{
			{"content": "post one"},
		},
		"twitterThreads": []map[string]interface{}{
			{"tweets": []map[string]string{{"content": "tweet one"}, {"content": "tweet two"}}},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for content, got %d: %s", w.Code, w.Body.String())
	}

	// Queue the scheduling run
	w = doJSON(t, r, "POST", "/campaigns/"+created.ID+"/schedule", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	var queued map[string]interface{}
	json.NewDecoder(w.Body).Decode(&queued)
	if queued["queued"] != true {
		t.Errorf("expected queued true, got %v", queued["queued"])
	}

	// The subscriber runs the job in the background, poll until the
	// campaign goes active
	deadline := time.Now().Add(5 * time.Second)
	var last model.Campaign
	for {
		w = doJSON(t, r, "GET", "/campaigns/"+created.ID, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		json.NewDecoder(w.Body).Decode(&last)
		if last.Status == model.StatusActive {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("campaign never went active, stuck at %s", last.Status)
		}
		time.Sleep(20 * time.Millisecond)
	}

	if last.SchedulingInfo == nil {
		t.Fatalf("expected scheduling info on the campaign")
	}
	if last.SchedulingInfo.ScheduledCount != 2 {
		t.Errorf("expected 2 scheduled items, got %d", last.SchedulingInfo.ScheduledCount)
	}

	// Stats view agrees
	w = doJSON(t, r, "GET", "/campaigns/"+created.ID+"/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for stats, got %d", w.Code)
	}
	var details struct {
		Status string         `json:"status"`
		Stats  map[string]int `json:"stats"`
	}
	json.NewDecoder(w.Body).Decode(&details)
	if details.Status != string(model.StatusActive) {
		t.Errorf("expected active, got %s", details.Status)
	}
	if details.Stats["scheduled"] != 2 || details.Stats["failed"] != 0 {
		t.Errorf("expected 2 scheduled / 0 failed, got %+v", details.Stats)
	}
}

func TestScheduleRequiresContent(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/campaigns", map[string]interface{}{"topic": "No content yet"})
	var created model.Campaign
	json.NewDecoder(w.Body).Decode(&created)

	w = doJSON(t, r, "POST", "/campaigns/"+created.ID+"/schedule", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a campaign without content, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "no content") {
		t.Errorf("expected a no-content error, got %q", w.Body.String())
	}
}

func TestListCampaignsWithTopicFilter(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, topic := range []string{"First", "Second"} {
		w := doJSON(t, r, "POST", "/campaigns", map[string]interface{}{"topic": topic})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	}

	// Unfiltered list has both
	w := doJSON(t, r, "GET", "/campaigns", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var listed struct {
		Data  []model.Campaign `json:"data"`
		Count int              `json:"count"`
	}
	json.NewDecoder(w.Body).Decode(&listed)
	if listed.Count != 2 || len(listed.Data) != 2 {
		t.Fatalf("expected 2 campaigns, got count %d / len %d", listed.Count, len(listed.Data))
	}

	// Topic filter narrows to one
	w = doJSON(t, r, "GET", "/campaigns?topic=first", nil)
	json.NewDecoder(w.Body).Decode(&listed)
	if listed.Count != 1 || len(listed.Data) != 1 {
		t.Fatalf("expected 1 campaign, got count %d / len %d", listed.Count, len(listed.Data))
	}
	if listed.Data[0].Topic != "First" {
		t.Errorf("expected First, got %q", listed.Data[0].Topic)
	}

	// No match is an empty list, not an error
	w = doJSON(t, r, "GET", "/campaigns?topic=third", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	listed.Data = nil
	json.NewDecoder(w.Body).Decode(&listed)
	if listed.Count != 0 {
		t.Errorf("expected no matches, got %d", listed.Count)
	}
}

func TestDeleteCampaignOverHTTP(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/campaigns", map[string]interface{}{"topic": "Short lived"})
	var created model.Campaign
	json.NewDecoder(w.Body).Decode(&created)

	w = doJSON(t, r, "DELETE", "/campaigns/"+created.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(t, r, "GET", "/campaigns/"+created.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}
