// internal/model/campaign.go
package model

import "time"

type CampaignStatus string

const (
    StatusPlanning    CampaignStatus = "planning"
    StatusResearching CampaignStatus = "researching"
    StatusWriting     CampaignStatus = "writing"
    StatusScheduling  CampaignStatus = "scheduling"
    StatusActive      CampaignStatus = "active"
    StatusCompleted   CampaignStatus = "completed"
)

type Campaign struct {
    ID             string           `json:"id"`
    Topic          string           `json:"topic"`
    Description    string           `json:"description,omitempty"`
    PublishDate    string           `json:"publishDate,omitempty"` // free-form hint: "tomorrow", "next week", "2026-03-01", ...
    Status         CampaignStatus   `json:"status"`
    Research       *ResearchData    `json:"research,omitempty"`
    Content        *CampaignContent `json:"content,omitempty"`
    SchedulingInfo *SchedulingInfo  `json:"schedulingInfo,omitempty"`
    CreatedAt      time.Time        `json:"createdAt"`
    UpdatedAt      time.Time        `json:"updatedAt"`
}

type ResearchData struct {
    Summary   string   `json:"summary"`
    KeyPoints []string `json:"keyPoints,omitempty"`
    Sources   []string `json:"sources,omitempty"`
}
