package model

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Platform is a closed enum persisted as a plain string.
type Platform string

const (
	PlatformTwitter  Platform = "twitter"
	PlatformLinkedIn Platform = "linkedin"
)

// ParsePlatform validates a stored platform string. Unknown values are a
// data-corruption error, never silently accepted.
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformTwitter, PlatformLinkedIn:
		return Platform(s), nil
	}
	return "", fmt.Errorf("unknown platform %q", s)
}

// Status is the draft lifecycle state, persisted as a plain string.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusPosted   Status = "posted"
	StatusFailed   Status = "failed"
	StatusExpired  Status = "expired"
)

// ParseStatus validates a stored status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusPosted, StatusFailed, StatusExpired:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown draft status %q", s)
}

// IsTerminal reports whether no further transition can leave the state.
func (s Status) IsTerminal() bool {
	return s == StatusPosted || s == StatusExpired
}

// CanApprove: pending drafts approve normally, failed drafts may be
// retry-approved after manual fixes.
func (s Status) CanApprove() bool {
	return s == StatusPending || s == StatusFailed
}

// CanReject: only pending drafts can be rejected.
func (s Status) CanReject() bool {
	return s == StatusPending
}

// CanMarkPosted: only approved drafts move to posted.
func (s Status) CanMarkPosted() bool {
	return s == StatusApproved
}

// CanMarkFailed: any non-terminal state may fail.
func (s Status) CanMarkFailed() bool {
	return !s.IsTerminal()
}

// Draft is a generated piece of social content with a tracked review lifecycle.
type Draft struct {
	ID               string
	Platform         Platform
	Content          string
	Hashtags         []string
	Tone             string
	SourceReference  string
	ImagePath        string
	Status           Status
	CreatedAt        time.Time
	ReviewedAt       *time.Time
	PostedAt         *time.Time
	PostURL          string
	ReviewerNotes    string
	ErrorMessage     string
	GenerationModel  string
	GenerationTokens int
	GenerationCost   float64
}

// NewDraftID mints an 8-character opaque identifier.
func NewDraftID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:4])
}

func NewDraft(platform Platform, content string, hashtags []string, tone string) *Draft {
	return &Draft{
		ID:        NewDraftID(),
		Platform:  platform,
		Content:   content,
		Hashtags:  hashtags,
		Tone:      tone,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// DisplayContent is the content with any hashtags not already present
// (case-insensitive) appended, space-joined. Derived on every read, never stored.
func (d *Draft) DisplayContent() string {
	if len(d.Hashtags) == 0 {
		return d.Content
	}
	contentLower := strings.ToLower(d.Content)
	var missing []string
	for _, tag := range d.Hashtags {
		if !strings.Contains(contentLower, strings.ToLower(tag)) {
			missing = append(missing, tag)
		}
	}
	if len(missing) == 0 {
		return d.Content
	}
	return d.Content + " " + strings.Join(missing, " ")
}

// EncodeHashtags serializes hashtags for the text column; empty lists store NULL.
func EncodeHashtags(tags []string) (*string, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	s := string(raw)
	return &s, nil
}

// DecodeHashtags parses the stored column back into a list; NULL decodes to nil.
func DecodeHashtags(raw *string) ([]string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(*raw), &tags); err != nil {
		return nil, fmt.Errorf("corrupt hashtags column: %w", err)
	}
	return tags, nil
}
