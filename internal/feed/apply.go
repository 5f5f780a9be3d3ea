package feed

import (
	"log/slog"

	"github.com/abdulachik/feedfilter/internal/filter"
)

// Result summarizes one pass over a feed.
type Result struct {
	Total           int `json:"total"`
	Hidden          int `json:"hidden"`
	HiddenByKeyword int `json:"hidden_by_keyword"`
	HiddenByGeo     int `json:"hidden_by_geo"`
	HiddenAds       int `json:"hidden_ads"`

	// Verdicts is aligned with the posts passed to Apply.
	Verdicts []filter.Verdict `json:"-"`
}

// Apply sets the Hidden flag of every post from settings and returns a summary.
//
// Sponsored posts are hidden only when HideAds is set and are never
// keyword-classified. Every other post is classified; posts that no longer
// match are made visible again.
func Apply(posts []Post, settings filter.Settings) Result {
	classifier := filter.Compile(settings)

	result := Result{
		Total:    len(posts),
		Verdicts: make([]filter.Verdict, len(posts)),
	}

	for i := range posts {
		p := &posts[i]

		var v filter.Verdict
		if p.IsAd() {
			if settings.HideAds {
				v = filter.Verdict{Hide: true, Reason: ReasonAd}
			}
		} else {
			v = classifier.Classify(p.Post)
		}

		p.Hidden = v.Hide
		result.Verdicts[i] = v

		switch v.Reason {
		case filter.ReasonKeyword:
			result.HiddenByKeyword++
			slog.Debug("hiding post because of matching keywords",
				"id", p.ID,
				"matched_keywords", v.MatchedKeywords,
				"subreddit_words", v.SubredditWords,
			)
		case filter.ReasonGeoPopular:
			result.HiddenByGeo++
		case ReasonAd:
			result.HiddenAds++
		}
		if v.Hide {
			result.Hidden++
		}
	}

	return result
}

// Visible returns the posts that are not hidden.
func Visible(posts []Post) []Post {
	visible := make([]Post, 0, len(posts))
	for _, p := range posts {
		if !p.Hidden {
			visible = append(visible, p)
		}
	}
	return visible
}
