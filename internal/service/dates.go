// internal/service/dates.go
package service

import (
    "log"
    "regexp"
    "strconv"
    "strings"
    "time"

    "github.com/araddon/dateparse"

    "github.com/agentuity/agent-social-marketing-v1/internal/model"
)

// Publish dates default one week out when the hint is missing, garbage,
// or not in the future.
const defaultLeadDays = 7

var inPhrasePattern = regexp.MustCompile(`^in\s+(\d+)\s+(day|days|week|weeks|month|months)$`)

// AllocatePublishDates turns a free-form date hint into count publish
// timestamps, one calendar day apart, formatted UTC ISO-8601 with
// millisecond precision. Pure function: same hint and now in, same
// dates out.
func AllocatePublishDates(hint string, count int, now time.Time) []string {
    if count <= 0 {
        return []string{}
    }

    base := resolveBaseDate(hint, now)
    dates := make([]string, 0, count)
    for i := 0; i < count; i++ {
        dates = append(dates, base.AddDate(0, 0, i).UTC().Format(model.ISO8601Millis))
    }
    return dates
}

// resolveBaseDate maps the hint to a concrete base date. Anything that is
// not strictly in the future falls back to now + 7 days, past dates are
// never accepted as a publish base.
func resolveBaseDate(hint string, now time.Time) time.Time {
    normalized := strings.ToLower(strings.TrimSpace(hint))

    var base time.Time
    switch normalized {
    case "":
        // no hint at all
    case "today":
        base = now
    case "tomorrow":
        base = now.AddDate(0, 0, 1)
    case "next week":
        base = now.AddDate(0, 0, 7)
    case "next month":
        base = now.AddDate(0, 1, 0)
    default:
        base = resolveRelativeOrParsed(normalized, now)
    }

    if base.IsZero() || !base.After(now) {
        if normalized != "" {
            log.Printf("⚠️ Publish date hint %q is not a usable future date, defaulting to +%d days", hint, defaultLeadDays)
        }
        base = now.AddDate(0, 0, defaultLeadDays)
    }
    return base
}

func resolveRelativeOrParsed(hint string, now time.Time) time.Time {
    if m := inPhrasePattern.FindStringSubmatch(hint); m != nil {
        n, err := strconv.Atoi(m[1])
        if err != nil {
            return time.Time{}
        }
        switch {
        case strings.HasPrefix(m[2], "day"):
            return now.AddDate(0, 0, n)
        case strings.HasPrefix(m[2], "week"):
            return now.AddDate(0, 0, n*7)
        default:
            return now.AddDate(0, n, 0)
        }
    }

    parsed, err := dateparse.ParseAny(hint)
    if err != nil {
        return time.Time{}
    }
    return parsed
}
