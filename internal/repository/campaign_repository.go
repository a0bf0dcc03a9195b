package repository

import (
    "fmt"
    "log"
    "strings"
    "sync"
    "time"

    appErrors "github.com/agentuity/agent-social-marketing-v1/internal/errors"
    "github.com/agentuity/agent-social-marketing-v1/internal/model"
)

const (
    campaignStore      = "campaigns"
    campaignIndexStore = "campaigns-index"
    campaignIndexKey   = "all-campaigns"

    indexWriteAttempts = 3
)

type CampaignRepositoryInterface interface {
    // Campaign records
    Save(c *model.Campaign) error
    GetByID(id string) (*model.Campaign, error)
    Delete(id string) error

    // Index-backed enumeration
    List() ([]*model.Campaign, error)
    FindByTopic(topic string) (*model.Campaign, error)
}

type CampaignRepository struct {
    KV KVStore

    indexOps  chan indexOp
    closeOnce sync.Once
}

// indexOp is one queued mutation of the shared campaign index
type indexOp struct {
    id     string
    remove bool
    reply  chan error
}

// NewCampaignRepository starts the index writer goroutine. Every
// read-modify-write of the shared index record goes through that single
// writer, so concurrent saves of different campaigns cannot drop each
// other's IDs.
func NewCampaignRepository(kv KVStore) *CampaignRepository {
    r := &CampaignRepository{
        KV:       kv,
        indexOps: make(chan indexOp),
    }
    go r.runIndexWriter()
    return r
}

// Close stops the index writer. No Save or Delete may follow.
func (r *CampaignRepository) Close() {
    r.closeOnce.Do(func() { close(r.indexOps) })
}

// ====================== Campaign records ======================

func (r *CampaignRepository) Save(c *model.Campaign) error {
    if c == nil || strings.TrimSpace(c.ID) == "" {
        return fmt.Errorf("campaign ID is required")
    }
    if c.Status == "" {
        c.Status = model.StatusPlanning
    }

    now := time.Now().UTC()
    if c.CreatedAt.IsZero() {
        c.CreatedAt = now
    }
    if now.After(c.UpdatedAt) {
        c.UpdatedAt = now
    }

    if err := r.KV.Set(campaignStore, c.ID, c); err != nil {
        return err
    }
    return r.updateIndex(c.ID, false)
}

func (r *CampaignRepository) GetByID(id string) (*model.Campaign, error) {
    var c model.Campaign
    found, err := r.KV.Get(campaignStore, id, &c)
    if err != nil {
        return nil, err
    }
    if !found {
        return nil, appErrors.NewCampaignNotFound(id)
    }
    return &c, nil
}

func (r *CampaignRepository) Delete(id string) error {
    if _, err := r.GetByID(id); err != nil {
        return err
    }
    if err := r.KV.Delete(campaignStore, id); err != nil {
        return err
    }
    return r.updateIndex(id, true)
}

// ====================== Index-backed enumeration ======================

func (r *CampaignRepository) List() ([]*model.Campaign, error) {
    var idx model.CampaignIndex
    if _, err := r.KV.Get(campaignIndexStore, campaignIndexKey, &idx); err != nil {
        return nil, err
    }

    campaigns := []*model.Campaign{}
    for _, id := range idx.CampaignIDs {
        c, err := r.GetByID(id)
        if err != nil {
            if _, ok := err.(*appErrors.ErrCampaignNotFound); ok {
                log.Println("⚠️ Campaign is in the index but its record is gone:", id)
                continue
            }
            return nil, err
        }
        campaigns = append(campaigns, c)
    }
    return campaigns, nil
}

func (r *CampaignRepository) FindByTopic(topic string) (*model.Campaign, error) {
    campaigns, err := r.List()
    if err != nil {
        return nil, err
    }

    needle := strings.ToLower(strings.TrimSpace(topic))
    for _, c := range campaigns {
        if strings.ToLower(strings.TrimSpace(c.Topic)) == needle {
            return c, nil
        }
    }
    return nil, nil // not found
}

// ====================== Index writer ======================

func (r *CampaignRepository) updateIndex(id string, remove bool) error {
    reply := make(chan error, 1)
    r.indexOps <- indexOp{id: id, remove: remove, reply: reply}
    return <-reply
}

func (r *CampaignRepository) runIndexWriter() {
    for op := range r.indexOps {
        op.reply <- r.applyIndexOp(op)
    }
}

// applyIndexOp runs one read-modify-write of the index record, retrying
// store errors a bounded number of times before reporting failure.
func (r *CampaignRepository) applyIndexOp(op indexOp) error {
    var lastErr error
    for attempt := 1; attempt <= indexWriteAttempts; attempt++ {
        var idx model.CampaignIndex
        if _, err := r.KV.Get(campaignIndexStore, campaignIndexKey, &idx); err != nil {
            lastErr = err
            log.Printf("⚠️ Index read failed (attempt %d/%d): %v", attempt, indexWriteAttempts, err)
            continue
        }

        ids, changed := applyIndexChange(idx.CampaignIDs, op.id, op.remove)
        if !changed {
            return nil // index already consistent
        }

        idx.CampaignIDs = ids
        if err := r.KV.Set(campaignIndexStore, campaignIndexKey, &idx); err != nil {
            lastErr = err
            log.Printf("⚠️ Index write failed (attempt %d/%d): %v", attempt, indexWriteAttempts, err)
            continue
        }
        return nil
    }
    return fmt.Errorf("campaign index update for %s failed after %d attempts: %w", op.id, indexWriteAttempts, lastErr)
}

func applyIndexChange(ids []string, id string, remove bool) ([]string, bool) {
    if remove {
        next := []string{}
        removed := false
        for _, existing := range ids {
            if existing == id {
                removed = true
                continue
            }
            next = append(next, existing)
        }
        return next, removed
    }

    for _, existing := range ids {
        if existing == id {
            return ids, false // already indexed
        }
    }
    return append(ids, id), true
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
