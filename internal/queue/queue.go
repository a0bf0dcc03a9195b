package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/agentuity/agent-social-marketing-v1/internal/model"
)

// TopicCampaignSchedules carries one job per campaign scheduling run
const TopicCampaignSchedules = "campaign_schedules"

// ScheduleJob is the payload published for a scheduling run
type ScheduleJob struct {
	CampaignID string `json:"campaign_id"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// ScheduleRunner is what the subscriber needs from the campaign service
type ScheduleRunner interface {
	ScheduleCampaign(campaignID string) (*model.SchedulingInfo, error)
}

// InMemoryQueue is the in-process queue with retry, used when no broker
// is configured
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Printf("Job failed (attempt %d/%d): %+v, error: %v\n", job.RetryCount, job.MaxRetries, job.Payload, err)

		if job.RetryCount > job.MaxRetries {
			log.Printf("Job permanently failed after %d attempts: %+v\n", job.MaxRetries, job.Payload)
			return // No requeue
		}

		// Backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartCampaignScheduleSubscriber runs scheduling jobs in-process. The
// production deployment consumes the same topic from RabbitMQ in
// cmd/worker instead. Registration is synchronous, jobs run on queue
// goroutines.
func StartCampaignScheduleSubscriber(q Queue, runner ScheduleRunner) {
    err := q.Subscribe(TopicCampaignSchedules, func(payload any) error {
        job, ok := payload.(ScheduleJob)
        if !ok {
            log.Println("⚠️ Invalid payload type, expected ScheduleJob")
            return nil // nothing to retry
        }

        log.Println("📩 Processing queued scheduling run for campaign:", job.CampaignID)

        info, err := runner.ScheduleCampaign(job.CampaignID)
        if err != nil {
            log.Println("⚠️ Scheduling run failed:", err)
            return err // triggers retry in queue
        }

        log.Printf("✅ Scheduling run done for %s: %d scheduled, %d failed\n", job.CampaignID, info.ScheduledCount, info.FailedCount)
        return nil
    })

    if err != nil {
        log.Println("⚠️ Failed to start subscriber for campaign_schedules:", err)
    }
}

var _ Queue = (*InMemoryQueue)(nil)
