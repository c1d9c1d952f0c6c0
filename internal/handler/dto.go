package handler

import (
	"time"

	"github.com/sharmanirmal/social-plugin/internal/model"
)

type DraftResponse struct {
	ID               string   `json:"id"`
	Platform         string   `json:"platform"`
	Content          string   `json:"content"`
	DisplayContent   string   `json:"display_content"`
	Hashtags         []string `json:"hashtags"`
	Tone             string   `json:"tone"`
	Status           string   `json:"status"`
	SourceReference  string   `json:"source_reference,omitempty"`
	CreatedAt        string   `json:"created_at"`
	ReviewedAt       *string  `json:"reviewed_at,omitempty"`
	PostedAt         *string  `json:"posted_at,omitempty"`
	PostURL          string   `json:"post_url,omitempty"`
	ReviewerNotes    string   `json:"reviewer_notes,omitempty"`
	ErrorMessage     string   `json:"error_message,omitempty"`
	GenerationModel  string   `json:"generation_model,omitempty"`
	GenerationTokens int      `json:"generation_tokens,omitempty"`
	GenerationCost   float64  `json:"generation_cost,omitempty"`
}

type DraftListResponse struct {
	Drafts []DraftResponse `json:"drafts"`
	Total  int             `json:"total"`
}

type ReviewRequest struct {
	Notes string `json:"notes"`
}

type PostedRequest struct {
	PostURL string `json:"post_url"`
}

type FailedRequest struct {
	Error string `json:"error"`
}

type RegenerateRequest struct {
	Tone string `json:"tone"`
}

type AddContextRequest struct {
	Context string `json:"context"`
}

type GenerateRequest struct {
	Tone   string `json:"tone"`
	DryRun bool   `json:"dry_run"`
}

type ExpireResponse struct {
	Expired int64 `json:"expired"`
}

type AnalyticsResponse struct {
	DraftID     string `json:"draft_id"`
	Platform    string `json:"platform"`
	PostURL     string `json:"post_url,omitempty"`
	PostedAt    string `json:"posted_at"`
	Likes       int    `json:"likes"`
	Retweets    int    `json:"retweets"`
	Comments    int    `json:"comments"`
	Impressions int    `json:"impressions"`
}

func toDraftResponse(d model.Draft) DraftResponse {
	res := DraftResponse{
		ID:               d.ID,
		Platform:         string(d.Platform),
		Content:          d.Content,
		DisplayContent:   d.DisplayContent(),
		Hashtags:         d.Hashtags,
		Tone:             d.Tone,
		Status:           string(d.Status),
		SourceReference:  d.SourceReference,
		CreatedAt:        d.CreatedAt.Format(time.RFC3339),
		PostURL:          d.PostURL,
		ReviewerNotes:    d.ReviewerNotes,
		ErrorMessage:     d.ErrorMessage,
		GenerationModel:  d.GenerationModel,
		GenerationTokens: d.GenerationTokens,
		GenerationCost:   d.GenerationCost,
	}
	if d.ReviewedAt != nil {
		reviewed := d.ReviewedAt.Format(time.RFC3339)
		res.ReviewedAt = &reviewed
	}
	if d.PostedAt != nil {
		posted := d.PostedAt.Format(time.RFC3339)
		res.PostedAt = &posted
	}
	return res
}
