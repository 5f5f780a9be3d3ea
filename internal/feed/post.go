// Package feed reads rendered feed snapshots and applies filter verdicts to
// the posts in them.
package feed

import (
	"github.com/abdulachik/feedfilter/internal/filter"
)

// Kind distinguishes organic posts from sponsored ones.
type Kind string

const (
	KindPost Kind = "post"
	KindAd   Kind = "ad"
)

// ReasonAd marks a sponsored post hidden by the ads setting.
const ReasonAd filter.Reason = "ad"

// Post is one item of a feed snapshot.
type Post struct {
	ID   string `json:"id,omitempty"`
	Kind Kind   `json:"kind,omitempty"`
	filter.Post

	// Hidden is the visibility state set by Apply.
	Hidden bool `json:"hidden"`
}

// IsAd reports whether the post is sponsored.
func (p Post) IsAd() bool {
	return p.Kind == KindAd
}

// normalizeKind maps anything but an ad to a regular post.
func normalizeKind(k Kind) Kind {
	if k == KindAd {
		return KindAd
	}
	return KindPost
}
