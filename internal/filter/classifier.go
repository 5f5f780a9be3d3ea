package filter

import (
	"slices"
	"strings"
)

// Recommendation sources that mark a post as surfaced by the geo/explore
// recommendation channel. Compared case-sensitively.
const (
	GeoPopularRecommendationContext = "GeoPopularRecommendationContext"
	GeoExploreSubreddits            = "geo_explore_subreddits"
)

// Reason explains why a post is hidden.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonGeoPopular Reason = "geo_popular"
	ReasonKeyword    Reason = "keyword"
)

// Post holds the attributes of one rendered post. Missing attributes are
// empty strings.
type Post struct {
	Title                string `json:"title"`
	Subreddit            string `json:"subreddit"`
	RecommendationSource string `json:"recommendation_source"`
}

// Verdict is the classification of one post.
type Verdict struct {
	Hide   bool   `json:"hide"`
	Reason Reason `json:"reason,omitempty"`

	// Diagnostics, only set for keyword verdicts.
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
	SubredditWords  []string `json:"subreddit_words,omitempty"`
}

// IsGeoPopular reports whether source is one of the geo/explore recommendation tags.
func IsGeoPopular(source string) bool {
	return source == GeoPopularRecommendationContext || source == GeoExploreSubreddits
}

// Classifier evaluates posts against one settings snapshot.
// It is immutable and safe for concurrent use.
type Classifier struct {
	hideGeoPopular bool
	keywords       []*Keyword
}

// Compile prepares a classifier for settings. Blank keywords are skipped.
func Compile(settings Settings) *Classifier {
	c := &Classifier{
		hideGeoPopular: settings.HideGeoPopular,
		keywords:       make([]*Keyword, 0, len(settings.Keywords)),
	}

	for _, kw := range settings.Keywords {
		if k := CompileKeyword(kw); k != nil {
			c.keywords = append(c.keywords, k)
		}
	}

	return c
}

// Classify returns the verdict for post.
//
// A geo-popular post is hidden without evaluating keywords. Otherwise the
// post is hidden when any keyword matches the title, any word of the
// tokenized subreddit name, or the full subreddit name.
func (c *Classifier) Classify(post Post) Verdict {
	if c.hideGeoPopular && IsGeoPopular(post.RecommendationSource) {
		return Verdict{Hide: true, Reason: ReasonGeoPopular}
	}

	if len(c.keywords) == 0 {
		return Verdict{}
	}

	title := strings.ToLower(post.Title)
	subreddit := strings.ToLower(post.Subreddit)
	words := Tokenize(post.Subreddit)

	var matched []string
	for _, k := range c.keywords {
		if !k.Match(title) && !matchSubreddit(k, subreddit, words) {
			continue
		}
		if !slices.Contains(matched, k.text) {
			matched = append(matched, k.text)
		}
	}

	if len(matched) == 0 {
		return Verdict{}
	}

	return Verdict{
		Hide:            true,
		Reason:          ReasonKeyword,
		MatchedKeywords: matched,
		SubredditWords:  words,
	}
}

// ShouldHide reports whether post should be hidden under settings.
func ShouldHide(post Post, settings Settings) bool {
	return Classify(post, settings).Hide
}

// Classify compiles settings and classifies a single post.
// Use Compile when classifying many posts against the same settings.
func Classify(post Post, settings Settings) Verdict {
	return Compile(settings).Classify(post)
}

// matchSubreddit checks each tokenized word, then the full name. The full
// name catches single-word subreddits and keywords spanning a word boundary.
func matchSubreddit(k *Keyword, name string, words []string) bool {
	for _, w := range words {
		if k.Match(w) {
			return true
		}
	}
	return k.Match(name)
}
