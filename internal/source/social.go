package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/pkg/models"
)

// officialAccount is a government social media account.
type officialAccount struct {
	Handle string
	Name   string
}

var twitterAccounts = []officialAccount{
	{"@GovSingapore", "Official Singapore Government"},
	{"@MCI_Sg", "Ministry of Communications and Information"},
	{"@MOHSingapore", "Ministry of Health"},
	{"@MOMSingapore", "Ministry of Manpower"},
	{"@SGPrimeMinist", "Prime Minister Office"},
	{"@MNDSingapore", "Ministry of National Development"},
	{"@MOESingapore", "Ministry of Education"},
	{"@LTAsg", "Land Transport Authority"},
	{"@NEAsg", "National Environment Agency"},
}

var facebookAccounts = []officialAccount{
	{"GovSingapore", "Official Singapore Government"},
	{"MCI.sg", "Ministry of Communications and Information"},
	{"MOHSingapore", "Ministry of Health"},
}

// SocialSource produces social media posts from official government
// accounts relevant to the query's entities. Post content is
// template-driven and deterministic; real platform APIs would slot in
// behind the same interface.
type SocialSource struct {
	analyzer *query.Analyzer
	now      func() time.Time
}

// NewSocialSource creates a social media source. A nil clock selects
// time.Now.
func NewSocialSource(analyzer *query.Analyzer, now func() time.Time) *SocialSource {
	if analyzer == nil {
		analyzer = query.NewAnalyzer(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &SocialSource{analyzer: analyzer, now: now}
}

// Fetch generates posts from the accounts relevant to the first search
// term (the raw query), plus a limited set of Facebook page posts.
func (s *SocialSource) Fetch(ctx context.Context, terms []string, strategy query.SearchStrategy) ([]models.Document, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	rawQuery := terms[0]
	analysis := s.analyzer.ParseQuery(rawQuery)

	var docs []models.Document

	for i, account := range relevantAccounts(analysis) {
		post := s.twitterPost(rawQuery, account, i)
		docs = append(docs, post)
	}

	for i, account := range facebookAccounts[:2] {
		docs = append(docs, s.facebookPost(rawQuery, account, i))
	}

	return docs, nil
}

// relevantAccounts maps query entities to the accounts most likely to
// have posted about them, defaulting to the main government account.
func relevantAccounts(analysis *query.Analysis) []officialAccount {
	var accounts []officialAccount

	hasOrg := func(org string) bool {
		for _, o := range analysis.Entities.Organizations {
			if o == org {
				return true
			}
		}
		return false
	}
	hasPolicy := func(policy string) bool {
		for _, p := range analysis.Entities.Policies {
			if p == policy {
				return true
			}
		}
		return false
	}

	if hasOrg("BTO") || hasPolicy("housing") {
		accounts = append(accounts, officialAccount{"@MNDSingapore", "Ministry of National Development"})
	}
	if hasOrg("CPF") {
		accounts = append(accounts, officialAccount{"@MOMSingapore", "Ministry of Manpower"})
	}
	if hasOrg("ERP") || hasPolicy("transport") {
		accounts = append(accounts, officialAccount{"@LTAsg", "Land Transport Authority"})
	}
	if len(analysis.Entities.Ministers) > 0 {
		accounts = append(accounts, officialAccount{"@SGPrimeMinist", "Prime Minister Office"})
	}

	if len(accounts) == 0 {
		accounts = append(accounts, officialAccount{"@GovSingapore", "Official Singapore Government"})
	}

	return accounts
}

var contentTemplates = map[string][]string{
	"housing": {
		"Update on BTO applications: We're working to reduce waiting times and increase housing supply. More details in our latest policy briefing.",
		"New measures announced to address housing affordability. Public consultation starts next month.",
		"Progress update: BTO completion rates have improved by 15% this quarter.",
	},
	"transport": {
		"ERP rates adjusted to optimize traffic flow during peak hours. Changes effective from next Monday.",
		"New MRT line construction on schedule. Expected completion by 2025.",
		"Traffic advisory: Road works on major highways this weekend.",
	},
	"general": {
		"Government announces new initiatives to support Singapore families.",
		"Policy updates and public consultation opportunities available on our website.",
		"Singapore continues to strengthen its position as a regional hub.",
	},
}

// relevantContent picks a template for the query topic. The index keys
// template rotation so different accounts post different variants while
// staying deterministic.
func relevantContent(rawQuery string, platform string, index int) string {
	topic := "general"
	lower := strings.ToLower(rawQuery)
	if strings.Contains(lower, "bto") || strings.Contains(lower, "housing") {
		topic = "housing"
	} else if strings.Contains(lower, "erp") || strings.Contains(lower, "transport") {
		topic = "transport"
	}

	options := contentTemplates[topic]
	base := options[index%len(options)]

	if platform == "twitter" {
		return base + " #Singapore #PublicPolicy"
	}
	return base + "\n\nFor more information, visit our website or contact our customer service."
}

func (s *SocialSource) twitterPost(rawQuery string, account officialAccount, index int) models.Document {
	content := relevantContent(rawQuery, "twitter", index)
	engagement := models.Engagement{Likes: 250, Retweets: 90, Replies: 40}
	meta := &models.SocialMetadata{
		Platform:        "twitter",
		AccountHandle:   account.Handle,
		PostID:          fmt.Sprintf("tweet_%s_%d", s.now().Format("20060102"), index),
		Engagement:      engagement,
		EngagementScore: EngagementScore(engagement),
		Verified:        true,
	}

	return models.Document{
		ID:          uuid.New(),
		Title:       account.Name + " - Twitter Post",
		Content:     content,
		Source:      "Twitter - " + account.Name,
		URL:         "https://twitter.com/" + strings.TrimPrefix(account.Handle, "@") + "/status/1234567890",
		Date:        s.now().AddDate(0, 0, -(index + 1)).Format(models.DateLayout),
		Speaker:     account.Name,
		Type:        models.TypeSocialMedia,
		Reliability: socialReliability(account, meta),
		Social:      meta,
	}
}

func (s *SocialSource) facebookPost(rawQuery string, account officialAccount, index int) models.Document {
	content := relevantContent(rawQuery, "facebook", index)
	engagement := models.Engagement{Likes: 500, Shares: 120, Comments: 60}
	meta := &models.SocialMetadata{
		Platform:        "facebook",
		AccountHandle:   account.Handle,
		PostID:          fmt.Sprintf("fb_%s_%d", s.now().Format("20060102"), index),
		Engagement:      engagement,
		EngagementScore: EngagementScore(engagement),
		Verified:        true,
	}

	return models.Document{
		ID:          uuid.New(),
		Title:       account.Name + " - Facebook Post",
		Content:     content,
		Source:      "Facebook - " + account.Name,
		URL:         "https://www.facebook.com/" + account.Handle + "/posts/1234567890",
		Date:        s.now().AddDate(0, 0, -(index + 2)).Format(models.DateLayout),
		Speaker:     account.Name,
		Type:        models.TypeSocialMedia,
		Reliability: socialReliability(account, meta),
		Social:      meta,
	}
}

// EngagementScore weighs amplification (retweets, shares) double.
func EngagementScore(e models.Engagement) int {
	if e.Retweets > 0 || e.Replies > 0 {
		return e.Likes + e.Retweets*2 + e.Replies
	}
	if e.Shares > 0 || e.Comments > 0 {
		return e.Likes + e.Shares*2 + e.Comments
	}
	return e.Likes
}

// socialReliability tiers a post: unverified posts are LOW, verified
// official government accounts are HIGH, and otherwise engagement decides.
func socialReliability(account officialAccount, meta *models.SocialMetadata) models.Reliability {
	if !meta.Verified {
		return models.ReliabilityLow
	}

	for _, a := range twitterAccounts {
		if a.Name == account.Name {
			return models.ReliabilityHigh
		}
	}
	for _, a := range facebookAccounts {
		if a.Name == account.Name {
			return models.ReliabilityHigh
		}
	}

	if meta.EngagementScore > 100 {
		return models.ReliabilityMedium
	}
	return models.ReliabilityLow
}
