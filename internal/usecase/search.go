package usecase

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/edsg/edsg/internal/domain"
)

// PageSize is the fixed number of professionals per search page.
const PageSize = 10

// SearchQuery carries every directory filter. Zero values are no-ops.
type SearchQuery struct {
	Keyword     string   `json:"keyword"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	PriceMin    *float64 `json:"priceMin"`
	PriceMax    *float64 `json:"priceMax"`
	Rating      string   `json:"rating"`
	PremiumOnly bool     `json:"premiumOnly"`
	Page        int      `json:"page"`
}

// ProfessionalCard is a directory row annotated with its rating summary.
type ProfessionalCard struct {
	Professional domain.User `json:"professional"`
	Rating       Summary     `json:"rating"`
}

// SearchResult is one page of ranked professionals plus totals for the
// caller to render pagination.
type SearchResult struct {
	Professionals []ProfessionalCard `json:"professionals"`
	Total         int                `json:"total"`
	Page          int                `json:"page"`
	TotalPages    int                `json:"totalPages"`
	PageSize      int                `json:"pageSize"`
}

// SidebarStats backs the search sidebar.
type SidebarStats struct {
	OverallMean  float64        `json:"overallMean"`
	MeanPrice    float64        `json:"meanPrice"`
	PremiumCount int            `json:"premiumCount"`
	Distribution map[string]int `json:"distribution"`
}

// DirectoryRepository loads the professional directory and its ratings.
type DirectoryRepository interface {
	ListActiveProfessionals(ctx context.Context) ([]domain.User, error)
	ScoresByProfessional(ctx context.Context) (map[string][]int, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (domain.User, error)
	CountCompletedRequests(ctx context.Context, professionalID string) (int64, error)
	CountRequests(ctx context.Context) (int64, error)
	RecentCompletedRequests(ctx context.Context, limit int) ([]domain.ServiceRequest, error)
}

// DirectoryInvalidator drops cached directory pages after a write that
// changes what search returns: profile edits, premium or active toggles,
// and new ratings.
type DirectoryInvalidator interface {
	Invalidate()
}

type SearchUsecase struct {
	directory DirectoryRepository
	ratings   RatingRepository
}

func NewSearchUsecase(directory DirectoryRepository, ratings RatingRepository) *SearchUsecase {
	return &SearchUsecase{directory: directory, ratings: ratings}
}

// Search runs the full pipeline: load active professionals, apply the
// conjunctive filters, rank premium-first then rating-desc, paginate.
func (uc *SearchUsecase) Search(ctx context.Context, q SearchQuery) (SearchResult, error) {
	users, err := uc.directory.ListActiveProfessionals(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	scores, err := uc.directory.ScoresByProfessional(ctx)
	if err != nil {
		return SearchResult{}, err
	}
	return rank(users, scores, q), nil
}

// rank is the pure filter/sort/paginate core over already loaded rows.
func rank(users []domain.User, scores map[string][]int, q SearchQuery) SearchResult {
	cards := make([]ProfessionalCard, 0, len(users))
	for _, u := range users {
		if !matchesFilters(u, q) {
			continue
		}
		cards = append(cards, ProfessionalCard{
			Professional: u,
			Rating:       Summarize(scores[u.ID]),
		})
	}

	// A recognized rating token that matches nobody empties the result
	// set outright; the filter is never silently dropped.
	if filter, ok := ParseBucketFilter(q.Rating); ok {
		kept := cards[:0]
		for _, c := range cards {
			if filter.Matches(c.Rating) {
				kept = append(kept, c)
			}
		}
		cards = kept
	}

	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if a.Professional.IsPremium != b.Professional.IsPremium {
			return a.Professional.IsPremium
		}
		return a.Rating.sortKey > b.Rating.sortKey
	})

	total := len(cards)
	totalPages := int(math.Ceil(float64(total) / float64(PageSize)))
	page := clampPage(q.Page, totalPages)

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return SearchResult{
		Professionals: cards[start:end],
		Total:         total,
		Page:          page,
		TotalPages:    totalPages,
		PageSize:      PageSize,
	}
}

// clampPage forces the 1-based page into [1, totalPages]; out-of-range
// pages clamp rather than error.
func clampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

func matchesFilters(u domain.User, q SearchQuery) bool {
	if q.Category != "" && !containsFold(deref(u.Category), q.Category) {
		return false
	}
	if q.Location != "" && !containsFold(deref(u.Location), q.Location) {
		return false
	}
	if q.Keyword != "" {
		if !containsFold(u.Name, q.Keyword) &&
			!containsFold(deref(u.Specialty), q.Keyword) &&
			!containsFold(deref(u.Bio), q.Keyword) {
			return false
		}
	}
	if q.PriceMin != nil && *q.PriceMin > 0 {
		if u.BasePrice == nil || *u.BasePrice < *q.PriceMin {
			return false
		}
	}
	if q.PriceMax != nil && *q.PriceMax > 0 {
		if u.BasePrice == nil || *u.BasePrice > *q.PriceMax {
			return false
		}
	}
	if q.PremiumOnly && !u.IsPremium {
		return false
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Categories lists the distinct categories of active professionals.
func (uc *SearchUsecase) Categories(ctx context.Context) ([]string, error) {
	return uc.directory.DistinctCategories(ctx)
}

// Stats computes the sidebar aggregates over the active directory.
func (uc *SearchUsecase) Stats(ctx context.Context) (SidebarStats, error) {
	users, err := uc.directory.ListActiveProfessionals(ctx)
	if err != nil {
		return SidebarStats{}, err
	}
	scores, err := uc.directory.ScoresByProfessional(ctx)
	if err != nil {
		return SidebarStats{}, err
	}

	var (
		scoreSum, scoreCount int
		priceSum             float64
		priceCount           int
		premium              int
		summaries            []Summary
	)
	for _, u := range users {
		for _, s := range scores[u.ID] {
			scoreSum += s
			scoreCount++
		}
		if u.BasePrice != nil {
			priceSum += *u.BasePrice
			priceCount++
		}
		if u.IsPremium {
			premium++
		}
		summaries = append(summaries, Summarize(scores[u.ID]))
	}

	stats := SidebarStats{
		PremiumCount: premium,
		Distribution: Distribution(summaries),
	}
	if scoreCount > 0 {
		stats.OverallMean = round1(float64(scoreSum) / float64(scoreCount))
	}
	if priceCount > 0 {
		stats.MeanPrice = math.Round(priceSum/float64(priceCount)*100) / 100
	}
	return stats, nil
}

// HomeView backs the landing page.
type HomeView struct {
	TotalRequests      int64                   `json:"totalRequests"`
	TotalProfessionals int                     `json:"totalProfessionals"`
	TopRated           []ProfessionalCard      `json:"topRated"`
	RecentCompleted    []domain.ServiceRequest `json:"recentCompleted"`
}

// Home assembles the landing page highlights.
func (uc *SearchUsecase) Home(ctx context.Context) (HomeView, error) {
	users, err := uc.directory.ListActiveProfessionals(ctx)
	if err != nil {
		return HomeView{}, err
	}
	scores, err := uc.directory.ScoresByProfessional(ctx)
	if err != nil {
		return HomeView{}, err
	}

	cards := make([]ProfessionalCard, 0, len(users))
	for _, u := range users {
		cards = append(cards, ProfessionalCard{Professional: u, Rating: Summarize(scores[u.ID])})
	}
	sort.SliceStable(cards, func(i, j int) bool {
		if cards[i].Rating.Mean != cards[j].Rating.Mean {
			return cards[i].Rating.Mean > cards[j].Rating.Mean
		}
		return cards[i].Rating.Count > cards[j].Rating.Count
	})
	top := cards
	if len(top) > 6 {
		top = top[:6]
	}

	recent, err := uc.directory.RecentCompletedRequests(ctx, 5)
	if err != nil {
		return HomeView{}, err
	}
	totalRequests, err := uc.directory.CountRequests(ctx)
	if err != nil {
		return HomeView{}, err
	}

	return HomeView{
		TotalRequests:      totalRequests,
		TotalProfessionals: len(users),
		TopRated:           top,
		RecentCompleted:    recent,
	}, nil
}

// ProfessionalDetail is the public profile page payload.
type ProfessionalDetail struct {
	Professional      domain.User     `json:"professional"`
	Rating            Summary         `json:"rating"`
	Ratings           []domain.Rating `json:"ratings"`
	CompletedRequests int64           `json:"completedRequests"`
}

// Detail loads one professional's public profile. Inactive users and
// users without a category are not visible here.
func (uc *SearchUsecase) Detail(ctx context.Context, id string) (ProfessionalDetail, error) {
	user, err := uc.directory.Get(ctx, id)
	if err != nil {
		return ProfessionalDetail{}, err
	}
	if !user.IsProfessional() {
		return ProfessionalDetail{}, domain.NotFoundError{Resource: "professional"}
	}

	ratings, err := uc.ratings.ListForProfessional(ctx, id)
	if err != nil {
		return ProfessionalDetail{}, err
	}
	scores := make([]int, 0, len(ratings))
	for _, r := range ratings {
		scores = append(scores, r.Score)
	}

	completed, err := uc.directory.CountCompletedRequests(ctx, id)
	if err != nil {
		return ProfessionalDetail{}, err
	}

	return ProfessionalDetail{
		Professional:      user,
		Rating:            Summarize(scores),
		Ratings:           ratings,
		CompletedRequests: completed,
	}, nil
}
