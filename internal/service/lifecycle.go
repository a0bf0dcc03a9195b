// internal/service/lifecycle.go
package service

import (
    appErrors "github.com/agentuity/agent-social-marketing-v1/internal/errors"
    "github.com/agentuity/agent-social-marketing-v1/internal/model"
)

// statusOrder fixes the campaign lifecycle:
// planning -> researching -> writing -> scheduling -> active -> completed
var statusOrder = map[model.CampaignStatus]int{
    model.StatusPlanning:    0,
    model.StatusResearching: 1,
    model.StatusWriting:     2,
    model.StatusScheduling:  3,
    model.StatusActive:      4,
    model.StatusCompleted:   5,
}

// CanTransition reports whether a status change respects lifecycle order.
// Stages may skip forward (they already run in pipeline order) and may
// re-enter the state they are in, which keeps retried stage jobs safe.
// Moving backwards is never allowed, so completed is terminal.
func CanTransition(from, to model.CampaignStatus) bool {
    fromRank, ok := statusOrder[from]
    if !ok {
        return false
    }
    toRank, ok := statusOrder[to]
    if !ok {
        return false
    }
    if from == to {
        return true
    }
    return toRank > fromRank
}

// transition flips the status on the in-memory copy and persists it.
// Callers that change payload and status together mutate the same copy
// before calling, so both land in one save.
func (s *CampaignService) transition(c *model.Campaign, to model.CampaignStatus) error {
    if !CanTransition(c.Status, to) {
        return appErrors.NewInvalidTransition(string(c.Status), string(to))
    }
    c.Status = to
    return s.CampaignRepo.Save(c)
}
