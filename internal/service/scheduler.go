// internal/service/scheduler.go
package service

import (
    "fmt"
    "log"
    "strings"

    "github.com/agentuity/agent-social-marketing-v1/internal/model"
    "github.com/agentuity/agent-social-marketing-v1/internal/typefully"
)

// DraftCreator is the slice of the Typefully client the scheduler needs
type DraftCreator interface {
    CreateDraft(content, platform, scheduleDate string, threadify bool) (string, error)
}

// dispatchOutcome is a closed set: a dispatch either succeeded or failed,
// and each variant knows how to render itself as a ScheduledPost record.
type dispatchOutcome interface {
    scheduledPost(postID string) model.ScheduledPost
}

type dispatchSucceeded struct {
    typefullyID   string
    scheduledDate string
}

type dispatchFailed struct {
    scheduledDate string
    reason        string
}

func (o dispatchSucceeded) scheduledPost(postID string) model.ScheduledPost {
    return model.ScheduledPost{
        PostID:        postID,
        TypefullyID:   o.typefullyID,
        ScheduledDate: o.scheduledDate,
        Status:        model.PostStatusScheduled,
    }
}

func (o dispatchFailed) scheduledPost(postID string) model.ScheduledPost {
    return model.ScheduledPost{
        PostID:        postID,
        TypefullyID:   "",
        ScheduledDate: o.scheduledDate, // the day stays reserved even though dispatch failed
        Status:        model.PostStatusFailed,
    }
}

// pickScheduleDate clamps the positional lookup to the last allocated
// date. Running out of dates must never drop an item.
func pickScheduleDate(dates []string, i int) string {
    if i < len(dates) {
        return dates[i]
    }
    log.Printf("⚠️ More items than allocated dates, reusing %s for item %d", dates[len(dates)-1], i)
    return dates[len(dates)-1]
}

func dispatchDraft(client DraftCreator, content, platform, date string, threadify bool) dispatchOutcome {
    id, err := client.CreateDraft(content, platform, date, threadify)
    if err != nil {
        return dispatchFailed{scheduledDate: date, reason: err.Error()}
    }
    return dispatchSucceeded{typefullyID: id, scheduledDate: date}
}

// ScheduleLinkedInPosts dispatches every post in order. A failed dispatch
// records a failed outcome and moves on, one bad post never blocks the
// rest. Posts with empty content are skipped and produce no outcome.
func ScheduleLinkedInPosts(client DraftCreator, posts []model.LinkedInPost, dates []string) []model.ScheduledPost {
    if len(posts) == 0 {
        return nil
    }
    if len(dates) == 0 {
        log.Println("⚠️ No publish dates allocated for linkedin posts, nothing scheduled")
        return nil
    }

    outcomes := []model.ScheduledPost{}
    for i := range posts {
        post := &posts[i]
        if strings.TrimSpace(post.Content) == "" {
            log.Printf("⚠️ Skipping empty linkedin post %d", i)
            continue
        }

        date := pickScheduleDate(dates, i)
        outcome := dispatchDraft(client, post.Content, model.PlatformLinkedIn, date, false)

        switch v := outcome.(type) {
        case dispatchSucceeded:
            post.ScheduledDate = v.scheduledDate
            post.TypefullyID = v.typefullyID
            post.Status = model.PostStatusScheduled
        case dispatchFailed:
            log.Printf("⚠️ linkedin post %d failed to dispatch: %s", i, v.reason)
        }

        outcomes = append(outcomes, outcome.scheduledPost(fmt.Sprintf("linkedin-post-%d", i)))
    }
    return outcomes
}

// ScheduleTwitterThreads works like ScheduleLinkedInPosts but flattens
// each multi-tweet thread into a single draft with threadify on, so
// Typefully splits it back into tweets. A lone tweet dispatches like a
// plain post. Threads with no usable tweets are skipped.
func ScheduleTwitterThreads(client DraftCreator, threads []model.TwitterThread, dates []string) []model.ScheduledPost {
    if len(threads) == 0 {
        return nil
    }
    if len(dates) == 0 {
        log.Println("⚠️ No publish dates allocated for twitter threads, nothing scheduled")
        return nil
    }

    outcomes := []model.ScheduledPost{}
    for i := range threads {
        thread := &threads[i]
        content, tweetCount := joinThread(thread)
        if content == "" {
            log.Printf("⚠️ Skipping empty twitter thread %d", i)
            continue
        }

        date := pickScheduleDate(dates, i)
        outcome := dispatchDraft(client, content, model.PlatformTwitter, date, tweetCount > 1)

        switch v := outcome.(type) {
        case dispatchSucceeded:
            thread.ScheduledDate = v.scheduledDate
            thread.TypefullyID = v.typefullyID
            thread.Status = model.PostStatusScheduled
        case dispatchFailed:
            log.Printf("⚠️ twitter thread %d failed to dispatch: %s", i, v.reason)
        }

        outcomes = append(outcomes, outcome.scheduledPost(fmt.Sprintf("twitter-thread-%d", i)))
    }
    return outcomes
}

func joinThread(t *model.TwitterThread) (string, int) {
    bodies := []string{}
    for _, tweet := range t.Tweets {
        if strings.TrimSpace(tweet.Content) == "" {
            continue
        }
        bodies = append(bodies, tweet.Content)
    }
    if len(bodies) == 0 {
        return "", 0
    }
    return typefully.JoinThread(bodies), len(bodies)
}
