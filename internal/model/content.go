// internal/model/content.go
package model

const (
    PlatformLinkedIn = "linkedin"
    PlatformTwitter  = "twitter"
)

type LinkedInPost struct {
    Content       string     `json:"content"`
    MediaUrls     []string   `json:"mediaUrls,omitempty"`
    ScheduledDate string     `json:"scheduledDate,omitempty"`
    TypefullyID   string     `json:"typefullyId,omitempty"`
    Status        PostStatus `json:"status,omitempty"`
}

type Tweet struct {
    Content   string   `json:"content"`
    MediaUrls []string `json:"mediaUrls,omitempty"`
}

type TwitterThread struct {
    Tweets        []Tweet    `json:"tweets"`
    ScheduledDate string     `json:"scheduledDate,omitempty"`
    TypefullyID   string     `json:"typefullyId,omitempty"`
    Status        PostStatus `json:"status,omitempty"`
}

type CampaignContent struct {
    LinkedInPosts  []LinkedInPost  `json:"linkedInPosts"`
    TwitterThreads []TwitterThread `json:"twitterThreads"`
}

func (c *CampaignContent) TotalItems() int {
    if c == nil {
        return 0
    }
    return len(c.LinkedInPosts) + len(c.TwitterThreads)
}

func (c *CampaignContent) IsEmpty() bool {
    return c.TotalItems() == 0
}
