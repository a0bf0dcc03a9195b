// internal/service/campaign_service.go
package service

import (
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/google/uuid"

    appErrors "github.com/agentuity/agent-social-marketing-v1/internal/errors"
    "github.com/agentuity/agent-social-marketing-v1/internal/model"
    "github.com/agentuity/agent-social-marketing-v1/internal/queue"
    "github.com/agentuity/agent-social-marketing-v1/internal/repository"
)

type CampaignService struct {
    CampaignRepo repository.CampaignRepositoryInterface
    Typefully    DraftCreator
    Queue        queue.Queue
    Clock        func() time.Time // nil means time.Now, tests pin it
}

func (s *CampaignService) now() time.Time {
    if s.Clock != nil {
        return s.Clock()
    }
    return time.Now()
}

// CampaignDetails is the stats view for a single campaign
type CampaignDetails struct {
    ID        string               `json:"id"`
    Topic     string               `json:"topic"`
    Status    model.CampaignStatus `json:"status"`
    CreatedAt time.Time            `json:"createdAt"`
    UpdatedAt time.Time            `json:"updatedAt"`
    Stats     map[string]int       `json:"stats"`
}

// ====================== Intake ======================

func (s *CampaignService) CreateCampaign(topic, description, publishDate string) (*model.Campaign, error) {
    if strings.TrimSpace(topic) == "" {
        return nil, appErrors.NewPrecondition("campaign topic is required")
    }

    c := &model.Campaign{
        ID:          uuid.NewString(),
        Topic:       strings.TrimSpace(topic),
        Description: description,
        PublishDate: publishDate,
        Status:      model.StatusPlanning,
    }

    if err := s.CampaignRepo.Save(c); err != nil {
        return nil, err
    }
    return c, nil
}

// AttachResearch stores the research payload and moves the campaign to
// researching, both in the same save.
func (s *CampaignService) AttachResearch(campaignID string, research *model.ResearchData) (*model.Campaign, error) {
    if research == nil || strings.TrimSpace(research.Summary) == "" {
        return nil, appErrors.NewPrecondition("research summary is required")
    }

    c, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    c.Research = research
    if err := s.transition(c, model.StatusResearching); err != nil {
        return nil, err
    }
    return c, nil
}

// AttachContent stores generated content and moves the campaign to
// writing, both in the same save.
func (s *CampaignService) AttachContent(campaignID string, content *model.CampaignContent) (*model.Campaign, error) {
    if content.IsEmpty() {
        return nil, appErrors.NewPrecondition("campaign content must include at least one post or thread")
    }

    c, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    c.Content = content
    if err := s.transition(c, model.StatusWriting); err != nil {
        return nil, err
    }
    return c, nil
}

// ====================== Scheduling stage ======================

// QueueSchedule verifies the campaign is schedulable and enqueues the
// stage job. The worker picks it up and runs ScheduleCampaign.
func (s *CampaignService) QueueSchedule(campaignID string) (*model.Campaign, error) {
    c, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }
    if c.Content.IsEmpty() {
        return nil, appErrors.NewPrecondition("campaign %s has no content to schedule", campaignID)
    }
    if s.Queue == nil {
        return nil, fmt.Errorf("schedule queue is not configured")
    }

    if err := s.Queue.Publish(queue.TopicCampaignSchedules, queue.ScheduleJob{CampaignID: campaignID}); err != nil {
        return nil, err
    }

    log.Println("📤 Queued scheduling for campaign:", campaignID)
    return c, nil
}

// ScheduleCampaign runs the scheduling stage end to end: allocate dates,
// dispatch every content item, then persist outcomes, mutated content and
// the active status in one save. Per-item dispatch failures never fail
// the stage.
func (s *CampaignService) ScheduleCampaign(campaignID string) (*model.SchedulingInfo, error) {
    c, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    if c.Content.IsEmpty() {
        return nil, appErrors.NewPrecondition("campaign %s has no content to schedule", campaignID)
    }
    if s.Typefully == nil {
        return nil, fmt.Errorf("typefully client is not configured")
    }

    if err := s.transition(c, model.StatusScheduling); err != nil {
        return nil, err
    }

    info := s.buildSchedulingInfo(c)

    c.SchedulingInfo = info
    c.Status = model.StatusActive
    if err := s.CampaignRepo.Save(c); err != nil {
        return nil, err
    }

    log.Printf("✅ Campaign %s scheduled: %d ok, %d failed", campaignID, info.ScheduledCount, info.FailedCount)
    return info, nil
}

// buildSchedulingInfo allocates one date sequence across both channels so
// publish days keep increasing when the content switches from linkedin to
// twitter, then merges the per-channel outcomes in dispatch order.
func (s *CampaignService) buildSchedulingInfo(c *model.Campaign) *model.SchedulingInfo {
    now := s.now()
    dates := AllocatePublishDates(c.PublishDate, c.Content.TotalItems(), now)

    posts := c.Content.LinkedInPosts
    threads := c.Content.TwitterThreads

    scheduled := []model.ScheduledPost{}
    scheduled = append(scheduled, ScheduleLinkedInPosts(s.Typefully, posts, dates[:len(posts)])...)
    scheduled = append(scheduled, ScheduleTwitterThreads(s.Typefully, threads, dates[len(posts):])...)

    info := &model.SchedulingInfo{
        ScheduledPosts: scheduled,
        ScheduledAt:    now.UTC(),
    }
    for _, p := range scheduled {
        switch p.Status {
        case model.PostStatusScheduled:
            info.ScheduledCount++
        case model.PostStatusFailed:
            info.FailedCount++
        }
    }
    return info
}

// ====================== Queries ======================

func (s *CampaignService) GetCampaign(id string) (*model.Campaign, error) {
    return s.CampaignRepo.GetByID(id)
}

func (s *CampaignService) ListCampaigns() ([]*model.Campaign, error) {
    return s.CampaignRepo.List()
}

func (s *CampaignService) FindCampaignByTopic(topic string) (*model.Campaign, error) {
    return s.CampaignRepo.FindByTopic(topic)
}

func (s *CampaignService) DeleteCampaign(id string) error {
    return s.CampaignRepo.Delete(id)
}

// GetCampaignWithStats summarizes scheduling outcomes for one campaign
func (s *CampaignService) GetCampaignWithStats(campaignID string) (*CampaignDetails, error) {
    c, err := s.CampaignRepo.GetByID(campaignID)
    if err != nil {
        return nil, err
    }

    stats := map[string]int{
        "totalItems":  c.Content.TotalItems(),
        "scheduled":   0,
        "failed":      0,
        "unscheduled": 0,
    }
    if c.SchedulingInfo != nil {
        stats["scheduled"] = c.SchedulingInfo.ScheduledCount
        stats["failed"] = c.SchedulingInfo.FailedCount
    }
    stats["unscheduled"] = stats["totalItems"] - stats["scheduled"] - stats["failed"]

    return &CampaignDetails{
        ID:        c.ID,
        Topic:     c.Topic,
        Status:    c.Status,
        CreatedAt: c.CreatedAt,
        UpdatedAt: c.UpdatedAt,
        Stats:     stats,
    }, nil
}
