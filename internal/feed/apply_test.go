package feed

import (
	"testing"

	"github.com/abdulachik/feedfilter/internal/filter"
	"github.com/stretchr/testify/assert"
)

func samplePosts() []Post {
	return []Post{
		{ID: "1", Kind: KindPost, Post: filter.Post{Title: "Soccer highlights", Subreddit: "r/sports"}},
		{ID: "2", Kind: KindPost, Post: filter.Post{Title: "Match thread", Subreddit: "r/PremierSoccerLeague"}},
		{ID: "3", Kind: KindPost, Post: filter.Post{Title: "Nearby", RecommendationSource: filter.GeoExploreSubreddits}},
		{ID: "4", Kind: KindAd, Post: filter.Post{Title: "Soccer boots sale"}},
		{ID: "5", Kind: KindPost, Post: filter.Post{Title: "Cute cats", Subreddit: "r/aww"}},
	}
}

func TestApply(t *testing.T) {
	posts := samplePosts()

	result := Apply(posts, filter.Settings{
		Keywords:       []string{"soccer"},
		HideGeoPopular: true,
		HideAds:        true,
	})

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 4, result.Hidden)
	assert.Equal(t, 2, result.HiddenByKeyword)
	assert.Equal(t, 1, result.HiddenByGeo)
	assert.Equal(t, 1, result.HiddenAds)

	assert.Equal(t, []bool{true, true, true, true, false}, hiddenFlags(posts))
	assert.Equal(t, []string{"soccer"}, result.Verdicts[0].MatchedKeywords)
	assert.Equal(t, ReasonAd, result.Verdicts[3].Reason)
	assert.False(t, result.Verdicts[4].Hide)
}

func TestApply_AdsAreNotKeywordClassified(t *testing.T) {
	posts := samplePosts()

	result := Apply(posts, filter.Settings{Keywords: []string{"soccer"}})

	assert.False(t, posts[3].Hidden)
	assert.Equal(t, 0, result.HiddenAds)
	assert.Equal(t, 2, result.Hidden)
}

func TestApply_UnhidesPostsThatNoLongerMatch(t *testing.T) {
	posts := samplePosts()

	Apply(posts, filter.Settings{Keywords: []string{"soccer"}, HideGeoPopular: true, HideAds: true})
	result := Apply(posts, filter.DefaultSettings())

	assert.Equal(t, 0, result.Hidden)
	assert.Equal(t, []bool{false, false, false, false, false}, hiddenFlags(posts))
}

func TestVisible(t *testing.T) {
	posts := samplePosts()
	Apply(posts, filter.Settings{Keywords: []string{"soccer"}})

	visible := Visible(posts)
	ids := make([]string, len(visible))
	for i, p := range visible {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"3", "4", "5"}, ids)
}

func hiddenFlags(posts []Post) []bool {
	flags := make([]bool, len(posts))
	for i, p := range posts {
		flags[i] = p.Hidden
	}
	return flags
}
