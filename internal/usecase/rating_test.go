package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	cases := []struct {
		name   string
		scores []int
		mean   float64
		bucket Bucket
	}{
		{"empty", nil, 0, BucketNone},
		{"single five", []int{5}, 5.0, BucketFive},
		{"two fives one four", []int{5, 5, 4}, 4.7, BucketFour},
		{"exactly 4.9 rounds to five", []int{5, 5, 5, 5, 5, 5, 5, 5, 5, 4}, 4.9, BucketFive},
		{"threes", []int{3, 3, 3}, 3.0, BucketThree},
		{"boundary 3.9", []int{4, 4, 4, 4, 4, 4, 4, 4, 3, 4}, 3.9, BucketFour},
		{"low", []int{1, 2}, 1.5, BucketOne},
		{"boundary 1.9", []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 1}, 1.9, BucketTwo},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Summarize(tc.scores)
			assert.Equal(t, tc.mean, s.Mean)
			assert.Equal(t, tc.bucket, s.Bucket)
			assert.Equal(t, len(tc.scores), s.Count)
			if len(tc.scores) > 0 {
				assert.GreaterOrEqual(t, s.Mean, 1.0)
				assert.LessOrEqual(t, s.Mean, 5.0)
			}
		})
	}
}

func TestBucketMonotonicInMean(t *testing.T) {
	order := map[Bucket]int{BucketOne: 1, BucketTwo: 2, BucketThree: 3, BucketFour: 4, BucketFive: 5}

	prev := 0
	for mean := 1.0; mean <= 5.0; mean += 0.1 {
		b := bucketOf(round1(mean))
		assert.GreaterOrEqual(t, order[b], prev, "bucket must not drop as mean rises (mean=%.1f)", mean)
		prev = order[b]
	}
}

func TestParseBucketFilter(t *testing.T) {
	for _, tok := range []string{"1", "2", "3", "4", "5", "4plus", "3plus"} {
		_, ok := ParseBucketFilter(tok)
		assert.True(t, ok, tok)
	}
	for _, tok := range []string{"", "6", "0", "best", "5plus"} {
		_, ok := ParseBucketFilter(tok)
		assert.False(t, ok, tok)
	}
}

func TestBucketFilterMatches(t *testing.T) {
	rated := Summarize([]int{5, 5, 4}) // mean 4.7, bucket "4"

	assert.True(t, FilterFour.Matches(rated))
	assert.True(t, FilterFourPlus.Matches(rated))
	assert.True(t, FilterThreePlus.Matches(rated))
	assert.False(t, FilterFive.Matches(rated))

	unrated := Summarize(nil)
	for _, f := range []BucketFilter{FilterOne, FilterTwo, FilterThree, FilterFour, FilterFive, FilterFourPlus, FilterThreePlus} {
		assert.False(t, f.Matches(unrated), "unrated professionals never match %s", f)
	}
}

// Plus-filters are supersets of the exact-star filters they cover.
func TestPlusFiltersAreSupersets(t *testing.T) {
	samples := [][]int{
		nil, {1}, {2}, {3}, {4}, {5},
		{5, 5, 4}, {4, 4, 3}, {3, 3, 2}, {2, 1}, {5, 5, 5, 5, 5, 5, 5, 5, 5, 4},
	}
	for _, scores := range samples {
		s := Summarize(scores)
		if FilterFive.Matches(s) {
			assert.True(t, FilterFourPlus.Matches(s))
		}
		if FilterFour.Matches(s) || FilterFive.Matches(s) {
			assert.True(t, FilterFourPlus.Matches(s))
		}
		if FilterFourPlus.Matches(s) {
			assert.True(t, FilterThreePlus.Matches(s))
		}
	}
}

func TestDistribution(t *testing.T) {
	dist := Distribution([]Summary{
		Summarize([]int{5}),
		Summarize([]int{5, 5, 4}),
		Summarize([]int{3}),
		Summarize(nil),
	})

	assert.Equal(t, 1, dist["5"])
	assert.Equal(t, 1, dist["4"])
	assert.Equal(t, 1, dist["3"])
	assert.Equal(t, 0, dist["2"])
	assert.Equal(t, 0, dist["1"])
	assert.Equal(t, 1, dist["0"])
}
