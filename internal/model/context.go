package model

import "time"

// Trend is a topical signal discovered by the fetcher.
type Trend struct {
	ID             int64
	Source         string
	Title          string
	Summary        string
	URL            string
	Author         string
	RelevanceScore float64
	FetchedAt      time.Time
	Date           string
}

// SourceDocument is ingested reference material used as generation context.
type SourceDocument struct {
	ID         int64
	SourceType string
	SourcePath string
	Title      string
	Content    string
	FetchedAt  time.Time
}

// PostAnalytics tracks engagement for a posted draft.
type PostAnalytics struct {
	ID            int64
	DraftID       string
	Platform      Platform
	PostURL       string
	PostedAt      time.Time
	Likes         int
	Retweets      int
	Comments      int
	Impressions   int
	LastCheckedAt time.Time
}

// Run statuses recorded in the run log.
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// PipelineRun is one entry in the run log.
type PipelineRun struct {
	ID          int64
	RunType     string
	StartedAt   time.Time
	CompletedAt *time.Time
	Status      string
	Summary     string
	Error       string
}
