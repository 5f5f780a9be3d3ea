package feed

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/abdulachik/feedfilter/internal/filter"
)

// Elements of a rendered feed page.
const (
	postElement   = "shreddit-post"
	adPostElement = "shreddit-ad-post"
)

// ReadHTML reads the posts of a saved, rendered feed page in document order.
func ReadHTML(r io.Reader) ([]Post, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var posts []Post
	doc.Find(postElement + ", " + adPostElement).Each(func(_ int, sel *goquery.Selection) {
		kind := KindPost
		if goquery.NodeName(sel) == adPostElement {
			kind = KindAd
		}

		posts = append(posts, Post{
			ID:   sel.AttrOr("id", ""),
			Kind: kind,
			Post: filter.Post{
				Title:                sel.AttrOr("post-title", ""),
				Subreddit:            firstAttr(sel, "subreddit-name", "subreddit-prefixed-name"),
				RecommendationSource: sel.AttrOr("recommendation-source", ""),
			},
		})
	})

	return posts, nil
}

func firstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v := sel.AttrOr(name, ""); v != "" {
			return v
		}
	}
	return ""
}
