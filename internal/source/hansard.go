package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/limjk/policylens/internal/query"
	"github.com/limjk/policylens/pkg/models"
)

const defaultHansardBaseURL = "https://sprs.parl.gov.sg"

// HansardSource scrapes the parliamentary records search page. Requests
// are rate limited so repeated multi-term searches stay polite.
type HansardSource struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// NewHansardSource creates a Hansard scraper. Empty baseURL selects the
// public search endpoint.
func NewHansardSource(baseURL string) *HansardSource {
	if baseURL == "" {
		baseURL = defaultHansardBaseURL
	}
	return &HansardSource{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(500*time.Millisecond), 2),
	}
}

// Fetch searches Hansard for each term and merges the results. A term
// with no results contributes nothing; transport failures abort with a
// *SourceError.
func (s *HansardSource) Fetch(ctx context.Context, terms []string, strategy query.SearchStrategy) ([]models.Document, error) {
	var docs []models.Document
	for _, term := range terms {
		results, err := s.search(ctx, term)
		if err != nil {
			return nil, &SourceError{Source: "hansard", Err: err}
		}
		docs = append(docs, results...)
	}
	return Dedupe(docs), nil
}

func (s *HansardSource) search(ctx context.Context, term string) ([]models.Document, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/search?q=%s", s.baseURL, url.QueryEscape(term))
	req, err := http.NewRequestWithContext(ctx, "GET", searchURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	var results []models.Document
	doc.Find(".search-result").Each(func(i int, sel *goquery.Selection) {
		title := strings.TrimSpace(sel.Find(".result-title").Text())
		content := strings.TrimSpace(sel.Find(".result-snippet").Text())
		date := strings.TrimSpace(sel.Find(".result-date").Text())
		speaker := strings.TrimSpace(sel.Find(".result-speaker").Text())
		href, _ := sel.Find("a").First().Attr("href")

		if title == "" || content == "" {
			return
		}

		results = append(results, models.Document{
			ID:          uuid.New(),
			Title:       title,
			Content:     content,
			Source:      "Hansard Parliamentary Debates",
			URL:         s.baseURL + href,
			Date:        date,
			Speaker:     speaker,
			Type:        models.TypeParliamentaryDebate,
			Reliability: models.ReliabilityHigh,
		})
	})

	return results, nil
}
