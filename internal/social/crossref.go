// Package social cross-references social media posts against official
// documents by lexical similarity, flagging posts that likely announce
// the same information as an official source.
package social

import (
	"fmt"
	"math"
	"strings"

	"github.com/limjk/policylens/pkg/models"
)

// Similarity thresholds, in percent.
const (
	// MinSimilarity is the floor below which no cross-reference is emitted.
	MinSimilarity = 30
	// SameAnnouncementThreshold marks a pair as the same announcement.
	SameAnnouncementThreshold = 70
)

// RelationshipType classifies the strength of a cross-reference.
type RelationshipType string

const (
	RelationSameAnnouncement RelationshipType = "likely_same_announcement"
	RelationRelatedContent   RelationshipType = "related_content"
)

// PostPreview summarizes the social side of a cross-reference.
type PostPreview struct {
	Platform       string `json:"platform"`
	Account        string `json:"account"`
	ContentPreview string `json:"content_preview"`
	Date           string `json:"date"`
	URL            string `json:"url"`
}

// DocumentPreview summarizes the official side of a cross-reference.
type DocumentPreview struct {
	Source         string `json:"source"`
	ContentPreview string `json:"content_preview"`
	Date           string `json:"date"`
	URL            string `json:"url"`
}

// CrossReference links a social post to an official document whose
// content it overlaps.
type CrossReference struct {
	SocialPost       PostPreview      `json:"social_post"`
	OfficialDocument DocumentPreview  `json:"official_document"`
	SimilarityScore  int              `json:"similarity_score"`
	RelationshipType RelationshipType `json:"relationship_type"`
	Analysis         string           `json:"analysis"`
}

// CrossReferenceOfficialSources compares every social post against every
// official document and returns the pairs whose Jaccard word-set
// similarity exceeds MinSimilarity percent.
func CrossReferenceOfficialSources(socialPosts, officialDocuments []models.Document) []CrossReference {
	var refs []CrossReference

	for _, post := range socialPosts {
		for _, doc := range officialDocuments {
			similarity := ContentSimilarity(post.Content, doc.Content)
			if similarity <= MinSimilarity {
				continue
			}

			relation := RelationRelatedContent
			verb := "relates to"
			if similarity > SameAnnouncementThreshold {
				relation = RelationSameAnnouncement
				verb = "appears to announce the same information"
			}

			platform := ""
			if post.Social != nil {
				platform = post.Social.Platform
			}

			refs = append(refs, CrossReference{
				SocialPost: PostPreview{
					Platform:       platform,
					Account:        post.Speaker,
					ContentPreview: preview(post.Content, 100),
					Date:           post.Date,
					URL:            post.URL,
				},
				OfficialDocument: DocumentPreview{
					Source:         doc.Source,
					ContentPreview: preview(doc.Content, 100),
					Date:           doc.Date,
					URL:            doc.URL,
				},
				SimilarityScore:  similarity,
				RelationshipType: relation,
				Analysis:         fmt.Sprintf("Social media post %s official document content", verb),
			})
		}
	}

	return refs
}

// ContentSimilarity computes Jaccard similarity over case-folded,
// space-split word sets, as a rounded percentage.
func ContentSimilarity(text1, text2 string) int {
	set1 := wordSet(text1)
	set2 := wordSet(text2)

	union := make(map[string]bool, len(set1)+len(set2))
	intersection := 0
	for w := range set1 {
		union[w] = true
		if set2[w] {
			intersection++
		}
	}
	for w := range set2 {
		union[w] = true
	}

	if len(union) == 0 {
		return 0
	}
	return int(math.Round(float64(intersection) / float64(len(union)) * 100))
}

func wordSet(text string) map[string]bool {
	words := strings.Split(strings.ToLower(text), " ")
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func preview(content string, n int) string {
	if len(content) > n {
		return content[:n] + "..."
	}
	return content + "..."
}
