// internal/model/scheduling.go
package model

import "time"

// ISO8601Millis is the layout for every scheduledDate written by the
// scheduler: UTC, millisecond precision.
const ISO8601Millis = "2006-01-02T15:04:05.000Z07:00"

type PostStatus string

const (
    PostStatusScheduled PostStatus = "scheduled"
    PostStatusFailed    PostStatus = "failed"
    PostStatusDraft     PostStatus = "draft"     // reserved, not produced by the scheduler
    PostStatusPublished PostStatus = "published" // reserved, not produced by the scheduler
)

type ScheduledPost struct {
    PostID        string     `json:"postId"`
    TypefullyID   string     `json:"typefullyId"`
    ScheduledDate string     `json:"scheduledDate"`
    Status        PostStatus `json:"status"` // scheduled, failed
}

type SchedulingInfo struct {
    ScheduledPosts []ScheduledPost `json:"scheduledPosts"`
    ScheduledCount int             `json:"scheduledCount"`
    FailedCount    int             `json:"failedCount"`
    ScheduledAt    time.Time       `json:"scheduledAt"`
}

type CampaignIndex struct {
    CampaignIDs []string `json:"campaignIds"`
}
