package usecase

import (
	"context"
	"math"
	"time"

	"github.com/edsg/edsg/internal/domain"
)

// Bucket is the discrete star tier a professional falls into, derived from
// the mean of their received scores.
type Bucket string

const (
	BucketNone  Bucket = "none"
	BucketOne   Bucket = "1"
	BucketTwo   Bucket = "2"
	BucketThree Bucket = "3"
	BucketFour  Bucket = "4"
	BucketFive  Bucket = "5"
)

// Summary is the aggregate over one professional's received scores.
type Summary struct {
	Mean   float64 `json:"mean"`
	Count  int     `json:"count"`
	Bucket Bucket  `json:"bucket"`

	// sortKey is the unrounded mean; listings order by it while the
	// bucket and the displayed mean use 1-decimal rounding.
	sortKey float64
}

// Summarize computes the mean (rounded to one decimal) and bucket for a
// collection of 1..5 scores. An empty collection yields mean 0 and the
// "none" bucket.
func Summarize(scores []int) Summary {
	if len(scores) == 0 {
		return Summary{Bucket: BucketNone}
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}
	raw := float64(sum) / float64(len(scores))
	mean := round1(raw)

	return Summary{
		Mean:    mean,
		Count:   len(scores),
		Bucket:  bucketOf(mean),
		sortKey: raw,
	}
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Half-open thresholds: a rounded mean of 4.9 counts as five stars, 3.9 as
// four, and so on down; everything under 1.9 is one star.
func bucketOf(mean float64) Bucket {
	switch {
	case mean >= 4.9:
		return BucketFive
	case mean >= 3.9:
		return BucketFour
	case mean >= 2.9:
		return BucketThree
	case mean >= 1.9:
		return BucketTwo
	default:
		return BucketOne
	}
}

// BucketFilter is a parsed rating-filter token.
type BucketFilter string

const (
	FilterFive      BucketFilter = "5"
	FilterFour      BucketFilter = "4"
	FilterThree     BucketFilter = "3"
	FilterTwo       BucketFilter = "2"
	FilterOne       BucketFilter = "1"
	FilterFourPlus  BucketFilter = "4plus"
	FilterThreePlus BucketFilter = "3plus"
)

// ParseBucketFilter maps a query token to a filter. Unrecognized tokens
// (including the empty string) mean "no rating filter".
func ParseBucketFilter(token string) (BucketFilter, bool) {
	switch BucketFilter(token) {
	case FilterFive, FilterFour, FilterThree, FilterTwo, FilterOne,
		FilterFourPlus, FilterThreePlus:
		return BucketFilter(token), true
	}
	return "", false
}

// Matches reports whether a summary falls inside the filter. Unrated
// professionals never match a rating filter.
func (f BucketFilter) Matches(s Summary) bool {
	if s.Count == 0 {
		return false
	}
	switch f {
	case FilterFive:
		return s.Mean >= 4.9
	case FilterFour:
		return s.Mean >= 3.9 && s.Mean < 4.9
	case FilterThree:
		return s.Mean >= 2.9 && s.Mean < 3.9
	case FilterTwo:
		return s.Mean >= 1.9 && s.Mean < 2.9
	case FilterOne:
		return s.Mean < 1.9
	case FilterFourPlus:
		return s.Mean >= 3.9
	case FilterThreePlus:
		return s.Mean >= 2.9
	}
	return false
}

// Distribution counts professionals per bucket, keyed by the bucket token
// plus "0" for the unrated.
func Distribution(summaries []Summary) map[string]int {
	dist := map[string]int{"5": 0, "4": 0, "3": 0, "2": 0, "1": 0, "0": 0}
	for _, s := range summaries {
		if s.Count == 0 {
			dist["0"]++
			continue
		}
		dist[string(s.Bucket)]++
	}
	return dist
}

// RatingRepository defines persistence for ratings.
type RatingRepository interface {
	Get(ctx context.Context, id int64) (domain.Rating, error)
	ListForProfessional(ctx context.Context, professionalID string) ([]domain.Rating, error)
	SetReply(ctx context.Context, id int64, reply string, at time.Time) error
}

type RatingUsecase struct {
	repo RatingRepository
}

func NewRatingUsecase(repo RatingRepository) *RatingUsecase {
	return &RatingUsecase{repo: repo}
}

// ListReceived returns the ratings a professional has received, newest
// first, along with their summary.
func (uc *RatingUsecase) ListReceived(ctx context.Context, professionalID string) ([]domain.Rating, Summary, error) {
	ratings, err := uc.repo.ListForProfessional(ctx, professionalID)
	if err != nil {
		return nil, Summary{}, err
	}
	scores := make([]int, 0, len(ratings))
	for _, r := range ratings {
		scores = append(scores, r.Score)
	}
	return ratings, Summarize(scores), nil
}

// Reply records the rated professional's response to a rating.
func (uc *RatingUsecase) Reply(ctx context.Context, professionalID string, ratingID int64, text string) error {
	if text == "" {
		return domain.ValidationError{Field: "reply", Message: "must not be empty"}
	}

	rating, err := uc.repo.Get(ctx, ratingID)
	if err != nil {
		return err
	}
	if rating.ProfessionalID != professionalID {
		return domain.PermissionError{Action: "reply to rating"}
	}

	return uc.repo.SetReply(ctx, ratingID, text, time.Now().UTC())
}
