package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edsg/edsg/internal/domain"
)

func professional(id, name string, opts ...func(*domain.User)) domain.User {
	category := "plumbing"
	u := domain.User{ID: id, Name: name, Category: &category, IsActive: true}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func withCategory(c string) func(*domain.User)  { return func(u *domain.User) { u.Category = &c } }
func withLocation(l string) func(*domain.User)  { return func(u *domain.User) { u.Location = &l } }
func withSpecialty(s string) func(*domain.User) { return func(u *domain.User) { u.Specialty = &s } }
func withPrice(p float64) func(*domain.User)    { return func(u *domain.User) { u.BasePrice = &p } }
func premium() func(*domain.User)               { return func(u *domain.User) { u.IsPremium = true } }

func ids(cards []ProfessionalCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Professional.ID)
	}
	return out
}

func TestRankConjunctiveFilters(t *testing.T) {
	users := []domain.User{
		professional("a", "Ana Silva", withCategory("plumbing"), withLocation("Lisboa"), withPrice(30)),
		professional("b", "Bruno Costa", withCategory("electrics"), withLocation("Porto"), withPrice(50)),
		professional("c", "Carla Dias", withCategory("plumbing"), withLocation("Porto"), withPrice(80)),
	}

	min := 40.0
	res := rank(users, nil, SearchQuery{Category: "plumb", Location: "porto", PriceMin: &min, Page: 1})

	assert.Equal(t, []string{"c"}, ids(res.Professionals))
	assert.Equal(t, 1, res.Total)
}

func TestRankKeywordOverNameSpecialtyBio(t *testing.T) {
	bio := "restoration of old tiles"
	users := []domain.User{
		professional("a", "Ana Azulejo"),
		professional("b", "Bruno", withSpecialty("Azulejo repair")),
		professional("c", "Carla", func(u *domain.User) { u.Bio = &bio }),
		professional("d", "Duarte"),
	}

	res := rank(users, nil, SearchQuery{Keyword: "AZULEJO", Page: 1})
	assert.ElementsMatch(t, []string{"a", "b"}, ids(res.Professionals))

	res = rank(users, nil, SearchQuery{Keyword: "tiles", Page: 1})
	assert.Equal(t, []string{"c"}, ids(res.Professionals))
}

func TestRankPremiumFirstThenRating(t *testing.T) {
	users := []domain.User{
		professional("low", "Low"),
		professional("high", "High"),
		professional("prem", "Prem", premium()),
	}
	scores := map[string][]int{
		"low":  {2, 3},
		"high": {5, 5, 4},
		"prem": {1},
	}

	res := rank(users, scores, SearchQuery{Page: 1})
	require.Len(t, res.Professionals, 3)
	// Premium outranks any rating; the rest order by mean descending.
	assert.Equal(t, []string{"prem", "high", "low"}, ids(res.Professionals))
	assert.Equal(t, 4.7, res.Professionals[1].Rating.Mean)
	assert.Equal(t, 3, res.Professionals[1].Rating.Count)
}

func TestRankUnratedAppearInUnfilteredListings(t *testing.T) {
	users := []domain.User{
		professional("rated", "Rated"),
		professional("fresh", "Fresh"),
	}
	scores := map[string][]int{"rated": {4}}

	res := rank(users, scores, SearchQuery{Page: 1})
	assert.ElementsMatch(t, []string{"rated", "fresh"}, ids(res.Professionals))

	res = rank(users, scores, SearchQuery{Rating: "4plus", Page: 1})
	assert.Equal(t, []string{"rated"}, ids(res.Professionals))
}

func TestRankEmptyBucketForcesEmptyResult(t *testing.T) {
	users := []domain.User{
		professional("a", "Ana"),
		professional("b", "Bruno"),
	}
	scores := map[string][]int{"a": {3}, "b": {3}}

	// Nobody holds five stars: the filter empties the result set rather
	// than being ignored.
	res := rank(users, scores, SearchQuery{Rating: "5", Page: 1})
	assert.Empty(t, res.Professionals)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 0, res.TotalPages)
}

func TestRankUnknownRatingTokenIsIgnored(t *testing.T) {
	users := []domain.User{professional("a", "Ana")}

	res := rank(users, nil, SearchQuery{Rating: "bestest", Page: 1})
	assert.Equal(t, []string{"a"}, ids(res.Professionals))
}

func TestRankPaginationClampAndTotals(t *testing.T) {
	var users []domain.User
	for i := 0; i < 25; i++ {
		users = append(users, professional(string(rune('a'+i)), "P"))
	}

	first := rank(users, nil, SearchQuery{Page: 1})
	assert.Equal(t, 25, first.Total)
	assert.Equal(t, 3, first.TotalPages)
	assert.Len(t, first.Professionals, 10)

	last := rank(users, nil, SearchQuery{Page: 3})
	assert.Len(t, last.Professionals, 5)

	// Page 99 of a 3-page result clamps to page 3.
	clamped := rank(users, nil, SearchQuery{Page: 99})
	assert.Equal(t, 3, clamped.Page)
	assert.Equal(t, ids(last.Professionals), ids(clamped.Professionals))

	under := rank(users, nil, SearchQuery{Page: 0})
	assert.Equal(t, 1, under.Page)
}

// Concatenating every page reproduces the full ranked set exactly once.
func TestRankPaginationIsTotalPreserving(t *testing.T) {
	var users []domain.User
	scores := map[string][]int{}
	for i := 0; i < 23; i++ {
		id := string(rune('a' + i))
		users = append(users, professional(id, "P"))
		scores[id] = []int{1 + i%5}
	}

	seen := map[string]int{}
	var concat []string
	total := rank(users, scores, SearchQuery{Page: 1})
	for page := 1; page <= total.TotalPages; page++ {
		res := rank(users, scores, SearchQuery{Page: page})
		for _, id := range ids(res.Professionals) {
			seen[id]++
			concat = append(concat, id)
		}
	}

	require.Len(t, concat, 23)
	for id, n := range seen {
		assert.Equal(t, 1, n, "professional %s must appear exactly once", id)
	}
}

func TestRankPremiumOnly(t *testing.T) {
	users := []domain.User{
		professional("a", "Ana", premium()),
		professional("b", "Bruno"),
	}

	res := rank(users, nil, SearchQuery{PremiumOnly: true, Page: 1})
	assert.Equal(t, []string{"a"}, ids(res.Professionals))
}

func TestRankTiesKeepOriginalOrder(t *testing.T) {
	users := []domain.User{
		professional("first", "F"),
		professional("second", "S"),
		professional("third", "T"),
	}
	scores := map[string][]int{"first": {4}, "second": {4}, "third": {4}}

	res := rank(users, scores, SearchQuery{Page: 1})
	assert.Equal(t, []string{"first", "second", "third"}, ids(res.Professionals))
}
