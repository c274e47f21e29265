package models

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DocumentType identifies the kind of source a document came from.
type DocumentType string

const (
	TypeParliamentaryDebate DocumentType = "parliamentary_debate"
	TypePressRelease        DocumentType = "press_release"
	TypeSocialMedia         DocumentType = "social_media"
	TypeUnknown             DocumentType = "unknown"
)

// Reliability is a coarse trust tier for a document's source.
type Reliability string

const (
	ReliabilityHigh   Reliability = "HIGH"
	ReliabilityMedium Reliability = "MEDIUM"
	ReliabilityLow    Reliability = "LOW"
)

// Engagement holds interaction counts for a social media post.
// Likes/Retweets/Replies apply to Twitter-style posts,
// Likes/Shares/Comments to Facebook-style posts.
type Engagement struct {
	Likes    int `json:"likes,omitempty"`
	Retweets int `json:"retweets,omitempty"`
	Replies  int `json:"replies,omitempty"`
	Shares   int `json:"shares,omitempty"`
	Comments int `json:"comments,omitempty"`
}

// SocialMetadata carries fields that only exist on social media documents.
type SocialMetadata struct {
	Platform        string     `json:"platform"`
	AccountHandle   string     `json:"account_handle"`
	PostID          string     `json:"post_id"`
	Engagement      Engagement `json:"engagement"`
	EngagementScore int        `json:"engagement_score"`
	Verified        bool       `json:"verified"`
}

// Document is a retrieved unit of evidence: a parliamentary statement,
// a press release, or a social media post. Social is nil unless
// Type == TypeSocialMedia.
type Document struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Source      string       `json:"source"`
	URL         string       `json:"url"`
	Date        string       `json:"date"`
	Speaker     string       `json:"speaker"`
	Type        DocumentType `json:"type"`
	Reliability Reliability  `json:"reliability,omitempty"`

	Social *SocialMetadata `json:"social_media_metadata,omitempty"`

	// Enrichment added by the cross-verification engine. Additive only:
	// original fields are never modified.
	ConfidenceScore   int      `json:"confidence_score,omitempty"`
	ConfidenceFactors []string `json:"confidence_factors,omitempty"`
}

// DateLayout is the calendar-date wire format used across sources.
const DateLayout = "2006-01-02"

// ParseDate parses a document date. It accepts the plain calendar form
// first and falls back to RFC 3339 timestamps. The boolean is false for
// unparseable dates, which callers must exclude from date-based grouping
// and sorting rather than compare.
func ParseDate(date string) (time.Time, bool) {
	if t, err := time.Parse(DateLayout, date); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// DaysApart returns the absolute distance between two document dates as a
// whole number of days, rounded up. The boolean is false if either date
// is unparseable.
func DaysApart(date1, date2 string) (int, bool) {
	t1, ok1 := ParseDate(date1)
	t2, ok2 := ParseDate(date2)
	if !ok1 || !ok2 {
		return 0, false
	}
	diff := t2.Sub(t1)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24)), true
}
