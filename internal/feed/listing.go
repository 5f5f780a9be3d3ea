package feed

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/abdulachik/feedfilter/internal/filter"
)

// linkKind is the Reddit thing kind of a link post.
const linkKind = "t3"

// redditListing represents a saved Reddit API listing response.
type redditListing struct {
	Data struct {
		Children []struct {
			Kind string `json:"kind"`
			Data struct {
				Name                  string `json:"name"`
				ID                    string `json:"id"`
				Title                 string `json:"title"`
				Subreddit             string `json:"subreddit"`
				SubredditNamePrefixed string `json:"subreddit_name_prefixed"`
				Promoted              bool   `json:"promoted"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// ReadListing reads the link posts of a saved Reddit listing. Promoted
// links become ads. Listings carry no recommendation source.
func ReadListing(r io.Reader) ([]Post, error) {
	var listing redditListing
	if err := json.NewDecoder(r).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	posts := make([]Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		if child.Kind != "" && child.Kind != linkKind {
			continue
		}
		item := child.Data

		id := item.Name
		if id == "" {
			id = item.ID
		}

		subreddit := item.SubredditNamePrefixed
		if subreddit == "" {
			subreddit = item.Subreddit
		}

		kind := KindPost
		if item.Promoted {
			kind = KindAd
		}

		posts = append(posts, Post{
			ID:   id,
			Kind: kind,
			Post: filter.Post{
				Title:     item.Title,
				Subreddit: subreddit,
			},
		})
	}

	return posts, nil
}
