package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharmanirmal/social-plugin/internal/model"
)

// DraftStore is the slice of the draft repository the review API needs.
type DraftStore interface {
	Get(draftID string) (*model.Draft, error)
	ListByStatus(status model.Status, platform model.Platform) ([]model.Draft, error)
	Approve(draftID string, notes string) (bool, error)
	Reject(draftID string, notes string) (bool, error)
	MarkPosted(draftID string, postURL string) (bool, error)
	MarkFailed(draftID string, errorMessage string) (bool, error)
	Delete(draftID string) (bool, error)
	ExpireOld(days int) (int64, error)
	PostedCountToday(platform model.Platform) (int, error)
	GetAnalytics(draftID string) (*model.PostAnalytics, error)
}

// DraftGenerator covers the generation operations exposed over the API.
type DraftGenerator interface {
	GenerateAll(ctx context.Context, tone string, dryRun bool) ([]model.Draft, error)
	Regenerate(ctx context.Context, draftID, newTone string) (*model.Draft, error)
	AddContext(ctx context.Context, draftID, newContext string) (*model.Draft, error)
}

// Queue hands approved draft IDs to the publish worker.
type Queue interface {
	Push(data string) error
	Length() (int64, error)
}

type DraftHandler struct {
	repository      DraftStore
	generator       DraftGenerator
	queue           Queue
	expireAfterDays int
}

func NewDraftHandler(repository DraftStore, generator DraftGenerator, queue Queue, expireAfterDays int) *DraftHandler {
	return &DraftHandler{
		repository:      repository,
		generator:       generator,
		queue:           queue,
		expireAfterDays: expireAfterDays,
	}
}

func (h *DraftHandler) GetDrafts(c *gin.Context) {
	status, err := model.ParseStatus(c.DefaultQuery("status", string(model.StatusPending)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var platform model.Platform
	if p := c.Query("platform"); p != "" {
		platform, err = model.ParsePlatform(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid platform"})
			return
		}
	}

	drafts, err := h.repository.ListByStatus(status, platform)
	if err != nil {
		slog.Error("error listing drafts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := DraftListResponse{Drafts: []DraftResponse{}, Total: len(drafts)}
	for _, d := range drafts {
		res.Drafts = append(res.Drafts, toDraftResponse(d))
	}

	c.JSON(http.StatusOK, res)
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	draft, err := h.repository.Get(c.Param("id"))
	if err != nil {
		slog.Error("error fetching draft", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	c.JSON(http.StatusOK, toDraftResponse(*draft))
}

func (h *DraftHandler) ApproveDraft(c *gin.Context) {
	id := c.Param("id")

	var req ReviewRequest
	c.ShouldBindJSON(&req)

	draft, err := h.repository.Get(id)
	if err != nil {
		slog.Error("error fetching draft", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	ok, err := h.repository.Approve(id, req.Notes)
	if err != nil {
		slog.Error("error approving draft", "error", err, "draft_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "Draft cannot be approved from status " + string(draft.Status)})
		return
	}

	queued := true
	if err := h.queue.Push(id); err != nil {
		slog.Error("error queueing approved draft for publish", "error", err, "draft_id", id)
		queued = false
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(model.StatusApproved), "queued": queued})
}

func (h *DraftHandler) RejectDraft(c *gin.Context) {
	id := c.Param("id")

	var req ReviewRequest
	c.ShouldBindJSON(&req)

	draft, err := h.repository.Get(id)
	if err != nil {
		slog.Error("error fetching draft", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	ok, err := h.repository.Reject(id, req.Notes)
	if err != nil {
		slog.Error("error rejecting draft", "error", err, "draft_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "Draft cannot be rejected from status " + string(draft.Status)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(model.StatusRejected)})
}

func (h *DraftHandler) MarkPosted(c *gin.Context) {
	id := c.Param("id")

	var req PostedRequest
	c.ShouldBindJSON(&req)

	draft, err := h.repository.Get(id)
	if err != nil {
		slog.Error("error fetching draft", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	ok, err := h.repository.MarkPosted(id, req.PostURL)
	if err != nil {
		slog.Error("error marking draft posted", "error", err, "draft_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "Draft cannot be marked posted from status " + string(draft.Status)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(model.StatusPosted)})
}

func (h *DraftHandler) MarkFailed(c *gin.Context) {
	id := c.Param("id")

	var req FailedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Error == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An error message is required"})
		return
	}

	draft, err := h.repository.Get(id)
	if err != nil {
		slog.Error("error fetching draft", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	ok, err := h.repository.MarkFailed(id, req.Error)
	if err != nil {
		slog.Error("error marking draft failed", "error", err, "draft_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "Draft is already terminal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(model.StatusFailed)})
}

func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	id := c.Param("id")

	ok, err := h.repository.Delete(id)
	if err != nil {
		slog.Error("error deleting draft", "error", err, "draft_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

func (h *DraftHandler) ExpireDrafts(c *gin.Context) {
	expired, err := h.repository.ExpireOld(h.expireAfterDays)
	if err != nil {
		slog.Error("error expiring drafts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, ExpireResponse{Expired: expired})
}

func (h *DraftHandler) RegenerateDraft(c *gin.Context) {
	id := c.Param("id")

	var req RegenerateRequest
	c.ShouldBindJSON(&req)

	draft, err := h.generator.Regenerate(c.Request.Context(), id, req.Tone)
	if err != nil {
		slog.Error("error regenerating draft", "error", err, "draft_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation error"})
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	c.JSON(http.StatusOK, toDraftResponse(*draft))
}

func (h *DraftHandler) AddContext(c *gin.Context) {
	id := c.Param("id")

	var req AddContextRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Context == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Context text is required"})
		return
	}

	draft, err := h.generator.AddContext(c.Request.Context(), id, req.Context)
	if err != nil {
		slog.Error("error adding context to draft", "error", err, "draft_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation error"})
		return
	}
	if draft == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}

	c.JSON(http.StatusOK, toDraftResponse(*draft))
}

func (h *DraftHandler) GenerateDrafts(c *gin.Context) {
	var req GenerateRequest
	c.ShouldBindJSON(&req)

	start := time.Now()
	drafts, err := h.generator.GenerateAll(c.Request.Context(), req.Tone, req.DryRun)
	if err != nil {
		slog.Error("error generating drafts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation error"})
		return
	}

	slog.Info("generation run finished", "drafts", len(drafts), "elapsed", time.Since(start))

	res := DraftListResponse{Drafts: []DraftResponse{}, Total: len(drafts)}
	for _, d := range drafts {
		res.Drafts = append(res.Drafts, toDraftResponse(d))
	}

	c.JSON(http.StatusOK, res)
}

func (h *DraftHandler) GetDraftAnalytics(c *gin.Context) {
	id := c.Param("id")

	analytics, err := h.repository.GetAnalytics(id)
	if err != nil {
		slog.Error("error fetching analytics", "error", err, "draft_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if analytics == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No analytics for draft"})
		return
	}

	c.JSON(http.StatusOK, AnalyticsResponse{
		DraftID:     analytics.DraftID,
		Platform:    string(analytics.Platform),
		PostURL:     analytics.PostURL,
		PostedAt:    analytics.PostedAt.Format(time.RFC3339),
		Likes:       analytics.Likes,
		Retweets:    analytics.Retweets,
		Comments:    analytics.Comments,
		Impressions: analytics.Impressions,
	})
}

func (h *DraftHandler) GetStats(c *gin.Context) {
	pending, err := h.repository.ListByStatus(model.StatusPending, "")
	if err != nil {
		slog.Error("error fetching stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	tweetsToday, err := h.repository.PostedCountToday(model.PlatformTwitter)
	if err != nil {
		slog.Error("error fetching stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	postsToday, err := h.repository.PostedCountToday(model.PlatformLinkedIn)
	if err != nil {
		slog.Error("error fetching stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	queueLength, err := h.queue.Length()
	if err != nil {
		slog.Warn("error fetching queue length", "error", err)
		queueLength = -1
	}

	c.JSON(http.StatusOK, gin.H{
		"pending_count":         len(pending),
		"posted_today_twitter":  tweetsToday,
		"posted_today_linkedin": postsToday,
		"publish_queue_length":  queueLength,
	})
}

func (h *DraftHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.PostedCountToday(model.PlatformTwitter)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}
