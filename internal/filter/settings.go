package filter

import "slices"

// Settings is the filter configuration snapshot consumed by a classification pass.
// The JSON layout matches the stored "redditFilter" record.
type Settings struct {
	Keywords       []string `json:"keywords"`
	HideGeoPopular bool     `json:"hideGeoPopular"`
	HideAds        bool     `json:"hideAds"`
}

// DefaultSettings returns settings that hide nothing.
func DefaultSettings() Settings {
	return Settings{Keywords: []string{}}
}

// Clone returns a deep copy so the snapshot can be handed to another goroutine.
func (s Settings) Clone() Settings {
	keywords := make([]string, len(s.Keywords))
	copy(keywords, s.Keywords)

	return Settings{
		Keywords:       keywords,
		HideGeoPopular: s.HideGeoPopular,
		HideAds:        s.HideAds,
	}
}

// HasKeyword reports whether keyword is already configured.
func (s Settings) HasKeyword(keyword string) bool {
	return slices.Contains(s.Keywords, keyword)
}
