package social

import (
	"strings"
	"testing"

	"github.com/limjk/policylens/pkg/models"
)

func TestContentSimilarity(t *testing.T) {
	tests := []struct {
		text1, text2 string
		want         int
	}{
		{"new bto flats in tampines", "new bto flats in tampines", 100},
		{"new bto flats", "old hdb resale", 0},
		// Empty contents tokenize to a single empty word each.
		{"", "", 100},
		// 2 shared of 4 distinct words.
		{"bto supply increase", "bto supply decrease", 50},
	}

	for _, tt := range tests {
		if got := ContentSimilarity(tt.text1, tt.text2); got != tt.want {
			t.Errorf("similarity(%q, %q): expected %d, got %d", tt.text1, tt.text2, tt.want, got)
		}
	}
}

func TestContentSimilarity_Symmetric(t *testing.T) {
	text1 := "government announces new housing measures for young families"
	text2 := "new housing measures announced by the government today"

	if ContentSimilarity(text1, text2) != ContentSimilarity(text2, text1) {
		t.Error("similarity must be symmetric")
	}
}

func TestCrossReferenceOfficialSources_Thresholds(t *testing.T) {
	official := []models.Document{{
		Source:  "Parliament Hansard",
		Date:    "2024-03-15",
		URL:     "https://example.gov.sg/hansard/1",
		Content: "new bto flats will launch in tampines",
	}}

	// Identical content: above the same-announcement threshold.
	same := []models.Document{{
		Type:    models.TypeSocialMedia,
		Speaker: "@MNDSingapore",
		Date:    "2024-03-15",
		Social:  &models.SocialMetadata{Platform: "Twitter/X"},
		Content: "new bto flats will launch in tampines",
	}}
	refs := CrossReferenceOfficialSources(same, official)
	if len(refs) != 1 {
		t.Fatalf("expected 1 cross-reference, got %d", len(refs))
	}
	if refs[0].RelationshipType != RelationSameAnnouncement {
		t.Errorf("expected likely_same_announcement, got %s", refs[0].RelationshipType)
	}
	if refs[0].SocialPost.Platform != "Twitter/X" {
		t.Errorf("expected platform from social metadata, got %q", refs[0].SocialPost.Platform)
	}
	if !strings.Contains(refs[0].Analysis, "same information") {
		t.Errorf("unexpected analysis %q", refs[0].Analysis)
	}

	// Partial overlap: 3 shared of 8 distinct words, 37.5% rounded to 38.
	related := []models.Document{{
		Type:    models.TypeSocialMedia,
		Content: "new bto flats today",
	}}
	refs = CrossReferenceOfficialSources(related, official)
	if len(refs) != 1 {
		t.Fatalf("expected 1 cross-reference, got %d", len(refs))
	}
	if refs[0].RelationshipType != RelationRelatedContent {
		t.Errorf("expected related_content, got %s", refs[0].RelationshipType)
	}
	if refs[0].SimilarityScore != 38 {
		t.Errorf("expected similarity 38, got %d", refs[0].SimilarityScore)
	}

	// Below the floor: nothing emitted.
	unrelated := []models.Document{{
		Type:    models.TypeSocialMedia,
		Content: "great hawker food at maxwell centre today",
	}}
	if refs = CrossReferenceOfficialSources(unrelated, official); len(refs) != 0 {
		t.Errorf("expected no cross-references below threshold, got %d", len(refs))
	}
}

func TestCrossReferenceOfficialSources_Previews(t *testing.T) {
	long := strings.Repeat("tampines bto launch ", 10) // 200 chars

	official := []models.Document{{Content: long}}
	posts := []models.Document{{Type: models.TypeSocialMedia, Content: long}}

	refs := CrossReferenceOfficialSources(posts, official)
	if len(refs) != 1 {
		t.Fatalf("expected 1 cross-reference, got %d", len(refs))
	}

	preview := refs[0].OfficialDocument.ContentPreview
	if len(preview) != 103 {
		t.Errorf("expected 100-char preview plus ellipsis, got %d chars", len(preview))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("expected ellipsis, got %q", preview)
	}
}
