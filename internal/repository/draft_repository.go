package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/sharmanirmal/social-plugin/internal/model"
)

// DraftRepository owns persisted draft state. Callers hold transient copies and
// re-fetch after any mutation; lifecycle guards are enforced here so an invalid
// transition returns (false, nil) instead of partially writing.
type DraftRepository struct {
	db *sql.DB
}

func NewDraftRepository(db *sql.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

const draftColumns = `id, platform, content, hashtags, tone, source_reference, image_path, status,
		created_at, reviewed_at, posted_at, post_url, reviewer_notes, error_message,
		generation_model, generation_tokens, generation_cost`

func scanDraft(row interface{ Scan(...any) error }) (*model.Draft, error) {
	var d model.Draft
	var platform, status string
	var hashtags, tone, sourceRef, imagePath, postURL, notes, errMsg, genModel sql.NullString
	var reviewedAt, postedAt sql.NullTime
	var genTokens sql.NullInt64
	var genCost sql.NullFloat64

	err := row.Scan(&d.ID, &platform, &d.Content, &hashtags, &tone, &sourceRef, &imagePath, &status,
		&d.CreatedAt, &reviewedAt, &postedAt, &postURL, &notes, &errMsg,
		&genModel, &genTokens, &genCost)
	if err != nil {
		return nil, err
	}

	if d.Platform, err = model.ParsePlatform(platform); err != nil {
		return nil, err
	}
	if d.Status, err = model.ParseStatus(status); err != nil {
		return nil, err
	}

	var tagsRaw *string
	if hashtags.Valid {
		tagsRaw = &hashtags.String
	}
	if d.Hashtags, err = model.DecodeHashtags(tagsRaw); err != nil {
		return nil, err
	}

	d.Tone = tone.String
	d.SourceReference = sourceRef.String
	d.ImagePath = imagePath.String
	d.PostURL = postURL.String
	d.ReviewerNotes = notes.String
	d.ErrorMessage = errMsg.String
	d.GenerationModel = genModel.String
	d.GenerationTokens = int(genTokens.Int64)
	d.GenerationCost = genCost.Float64
	if reviewedAt.Valid {
		d.ReviewedAt = &reviewedAt.Time
	}
	if postedAt.Valid {
		d.PostedAt = &postedAt.Time
	}

	return &d, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (r *DraftRepository) Create(draft *model.Draft) error {
	tags, err := model.EncodeHashtags(draft.Hashtags)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(`
		INSERT INTO drafts(id, platform, content, hashtags, tone, source_reference, image_path, status,
			created_at, generation_model, generation_tokens, generation_cost)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, draft.ID, string(draft.Platform), draft.Content, tags, nullable(draft.Tone),
		nullable(draft.SourceReference), nullable(draft.ImagePath), string(draft.Status),
		draft.CreatedAt, nullable(draft.GenerationModel), draft.GenerationTokens, draft.GenerationCost)
	if err != nil {
		return err
	}

	slog.Info("created draft", "draft_id", draft.ID, "status", draft.Status, "platform", draft.Platform)
	return nil
}

// Get returns (nil, nil) when no draft has the given id.
func (r *DraftRepository) Get(draftID string) (*model.Draft, error) {
	draft, err := scanDraft(r.db.QueryRow(`
		SELECT `+draftColumns+` FROM drafts WHERE id = $1
	`, draftID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *DraftRepository) ListByStatus(status model.Status, platform model.Platform) ([]model.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE status = $1`
	args := []any{string(status)}
	if platform != "" {
		query += ` AND platform = $2`
		args = append(args, string(platform))
	}
	query += ` ORDER BY created_at DESC`

	return r.queryDrafts(query, args...)
}

func (r *DraftRepository) GetRecent(days int, platform model.Platform) ([]model.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE created_at > now() - make_interval(days => $1)`
	args := []any{days}
	if platform != "" {
		query += ` AND platform = $2`
		args = append(args, string(platform))
	}
	query += ` ORDER BY created_at DESC`

	return r.queryDrafts(query, args...)
}

func (r *DraftRepository) queryDrafts(query string, args ...any) ([]model.Draft, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drafts []model.Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *d)
	}
	return drafts, rows.Err()
}

// Approve moves a pending or failed draft to approved. Returns (false, nil)
// when the draft is missing or its state forbids the transition.
func (r *DraftRepository) Approve(draftID string, notes string) (bool, error) {
	draft, err := r.Get(draftID)
	if err != nil {
		return false, err
	}
	if draft == nil {
		return false, nil
	}
	if !draft.Status.CanApprove() {
		slog.Warn("cannot approve draft", "draft_id", draftID, "status", draft.Status)
		return false, nil
	}

	_, err = r.db.Exec(`
		UPDATE drafts SET status = $1, reviewed_at = $2, reviewer_notes = COALESCE($3, reviewer_notes)
		WHERE id = $4
	`, string(model.StatusApproved), time.Now().UTC(), nullable(notes), draftID)
	if err != nil {
		return false, err
	}

	slog.Info("approved draft", "draft_id", draftID)
	return true, nil
}

// Reject moves a pending draft to rejected with optional reviewer notes.
func (r *DraftRepository) Reject(draftID string, notes string) (bool, error) {
	draft, err := r.Get(draftID)
	if err != nil {
		return false, err
	}
	if draft == nil {
		return false, nil
	}
	if !draft.Status.CanReject() {
		slog.Warn("cannot reject draft", "draft_id", draftID, "status", draft.Status)
		return false, nil
	}

	_, err = r.db.Exec(`
		UPDATE drafts SET status = $1, reviewed_at = $2, reviewer_notes = $3 WHERE id = $4
	`, string(model.StatusRejected), time.Now().UTC(), nullable(notes), draftID)
	if err != nil {
		return false, err
	}

	slog.Info("rejected draft", "draft_id", draftID)
	return true, nil
}

// MarkPosted moves an approved draft to posted and records its analytics row
// in the same transaction.
func (r *DraftRepository) MarkPosted(draftID string, postURL string) (bool, error) {
	draft, err := r.Get(draftID)
	if err != nil {
		return false, err
	}
	if draft == nil || !draft.Status.CanMarkPosted() {
		return false, nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	_, err = tx.Exec(`
		UPDATE drafts SET status = $1, posted_at = $2, post_url = $3 WHERE id = $4
	`, string(model.StatusPosted), now, nullable(postURL), draftID)
	if err != nil {
		return false, err
	}

	_, err = tx.Exec(`
		INSERT INTO post_analytics(draft_id, platform, post_url, posted_at)
		VALUES($1, $2, $3, $4)
		ON CONFLICT (draft_id) DO NOTHING
	`, draftID, string(draft.Platform), nullable(postURL), now)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	slog.Info("posted draft", "draft_id", draftID, "post_url", postURL)
	return true, nil
}

// MarkFailed records an error on any non-terminal draft.
func (r *DraftRepository) MarkFailed(draftID string, errorMessage string) (bool, error) {
	draft, err := r.Get(draftID)
	if err != nil {
		return false, err
	}
	if draft == nil || !draft.Status.CanMarkFailed() {
		return false, nil
	}

	_, err = r.db.Exec(`
		UPDATE drafts SET status = $1, error_message = $2 WHERE id = $3
	`, string(model.StatusFailed), errorMessage, draftID)
	if err != nil {
		return false, err
	}

	slog.Error("draft failed", "draft_id", draftID, "error", errorMessage)
	return true, nil
}

// UpdateContent replaces content and hashtags and resets the draft to pending,
// re-opening it for review even if it had been rejected. The three fields land
// in one statement so concurrent updates never interleave partial writes.
func (r *DraftRepository) UpdateContent(draftID string, content string, hashtags []string) (bool, error) {
	tags, err := model.EncodeHashtags(hashtags)
	if err != nil {
		return false, err
	}

	res, err := r.db.Exec(`
		UPDATE drafts SET content = $1, hashtags = $2, status = $3 WHERE id = $4
	`, content, tags, string(model.StatusPending), draftID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	slog.Info("updated draft content", "draft_id", draftID)
	return true, nil
}

// Delete removes the draft and its analytics permanently.
func (r *DraftRepository) Delete(draftID string) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM post_analytics WHERE draft_id = $1`, draftID); err != nil {
		return false, err
	}

	res, err := tx.Exec(`DELETE FROM drafts WHERE id = $1`, draftID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	slog.Info("deleted draft", "draft_id", draftID)
	return true, nil
}

// ExpireOld marks pending drafts older than the threshold as expired.
func (r *DraftRepository) ExpireOld(days int) (int64, error) {
	res, err := r.db.Exec(`
		UPDATE drafts SET status = $1
		WHERE status = $2 AND created_at < now() - make_interval(days => $3)
	`, string(model.StatusExpired), string(model.StatusPending), days)
	if err != nil {
		return 0, err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		slog.Info("expired old drafts", "count", count)
	}
	return count, nil
}

// GetRecentContents returns draft bodies most-recent-first for diversity context.
func (r *DraftRepository) GetRecentContents(days int, platform model.Platform, limit int) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT content FROM drafts
		WHERE created_at > now() - make_interval(days => $1) AND platform = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, days, string(platform), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

// GetRecentRejectionNotes returns reviewer notes from recently rejected drafts,
// most-recent-first, for negative feedback to the LLM.
func (r *DraftRepository) GetRecentRejectionNotes(days int, platform model.Platform) ([]string, error) {
	return r.queryNotes(`
		SELECT reviewer_notes FROM drafts
		WHERE status = 'rejected'
		AND reviewer_notes IS NOT NULL AND reviewer_notes != ''
		AND reviewed_at > now() - make_interval(days => $1)
	`, days, platform)
}

// GetRecentApprovalNotes returns reviewer notes from recently approved or
// posted drafts, as positive signals.
func (r *DraftRepository) GetRecentApprovalNotes(days int, platform model.Platform) ([]string, error) {
	return r.queryNotes(`
		SELECT reviewer_notes FROM drafts
		WHERE status IN ('approved', 'posted')
		AND reviewer_notes IS NOT NULL AND reviewer_notes != ''
		AND reviewed_at > now() - make_interval(days => $1)
	`, days, platform)
}

func (r *DraftRepository) queryNotes(query string, days int, platform model.Platform) ([]string, error) {
	args := []any{days}
	if platform != "" {
		query += ` AND platform = $2`
		args = append(args, string(platform))
	}
	query += ` ORDER BY reviewed_at DESC LIMIT 10`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// PostedCountToday supports per-day posting limits.
func (r *DraftRepository) PostedCountToday(platform model.Platform) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM drafts
		WHERE platform = $1 AND status = 'posted' AND posted_at::date = now()::date
	`, string(platform)).Scan(&count)
	return count, err
}

// GetAnalytics returns (nil, nil) when the draft has no analytics row.
func (r *DraftRepository) GetAnalytics(draftID string) (*model.PostAnalytics, error) {
	var a model.PostAnalytics
	var platform string
	var postURL sql.NullString
	var postedAt, lastChecked sql.NullTime

	err := r.db.QueryRow(`
		SELECT id, draft_id, platform, post_url, posted_at, likes, retweets, comments, impressions, last_checked_at
		FROM post_analytics WHERE draft_id = $1
	`, draftID).Scan(&a.ID, &a.DraftID, &platform, &postURL, &postedAt,
		&a.Likes, &a.Retweets, &a.Comments, &a.Impressions, &lastChecked)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if a.Platform, err = model.ParsePlatform(platform); err != nil {
		return nil, err
	}
	a.PostURL = postURL.String
	if postedAt.Valid {
		a.PostedAt = postedAt.Time
	}
	if lastChecked.Valid {
		a.LastCheckedAt = lastChecked.Time
	}
	return &a, nil
}
