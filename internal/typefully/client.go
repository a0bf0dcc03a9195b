package typefully

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	appErrors "github.com/agentuity/agent-social-marketing-v1/internal/errors"
	"github.com/agentuity/agent-social-marketing-v1/internal/model"
)

const DefaultBaseURL = "https://api.typefully.com/v1"

// ThreadSeparator is what the drafts endpoint re-splits thread content on
const ThreadSeparator = "\n\n\n\n"

// Client talks to the Typefully drafts API. One instance per process, the
// API key is injected at construction and never read from the environment
// here.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// draftRequest is the wire format Typefully expects. The automation flags
// stay off, the agent never auto-retweets or auto-plugs.
type draftRequest struct {
	Content            string `json:"content"`
	Platform           string `json:"platform"`
	Threadify          bool   `json:"threadify"`
	ScheduleDate       string `json:"schedule-date"`
	AutoRetweetEnabled bool   `json:"auto_retweet_enabled"`
	AutoPlugEnabled    bool   `json:"auto_plug_enabled"`
}

type draftResponse struct {
	ID string `json:"id"`
}

// JoinThread flattens tweet bodies into the single content blob the drafts
// endpoint expects for threads
func JoinThread(tweets []string) string {
	return strings.Join(tweets, ThreadSeparator)
}

// CreateDraft posts one draft and returns the remote draft ID. A non-2xx
// answer comes back as *appErrors.DispatchError. No retry here, the caller
// decides what a failure means.
func (c *Client) CreateDraft(content, platform, scheduleDate string, threadify bool) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", fmt.Errorf("typefully API key is not configured")
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("draft content is empty")
	}
	if scheduleDate == "" {
		// same fallback the date allocator uses for "tomorrow"
		scheduleDate = time.Now().UTC().AddDate(0, 0, 1).Format(model.ISO8601Millis)
	}

	payload := draftRequest{
		Content:      content,
		Platform:     platform,
		Threadify:    threadify,
		ScheduleDate: scheduleDate,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+"/drafts/", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", appErrors.NewDispatchError(resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(raw)))
	}

	var draft draftResponse
	if err := json.NewDecoder(resp.Body).Decode(&draft); err != nil {
		return "", fmt.Errorf("decode draft response: %w", err)
	}
	if draft.ID == "" {
		return "", fmt.Errorf("draft response is missing an id")
	}
	return draft.ID, nil
}
