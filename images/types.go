package images

// Source identifies where a resolved image came from.
type Source string

const (
	SourceUnsplash    Source = "unsplash"
	SourceGiphy       Source = "giphy"
	SourceStoryset    Source = "storyset"
	SourcePlaceholder Source = "placeholder"
)

// Type is the visual kind of a resolved image.
type Type string

const (
	TypePhoto        Type = "photo"
	TypeGif          Type = "gif"
	TypeIllustration Type = "illustration"
)

// Author attributes a photo to its creator.
type Author struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Asset is a resolved decorative image, source-agnostic. Construct assets
// through the typed constructors, which keep the variant invariants:
// placeholder assets never carry attribution, and embed code only exists for
// the gif and illustration variants.
type Asset struct {
	Type      Type    `json:"type"`
	Source    Source  `json:"source"`
	URL       string  `json:"url"`
	Alt       string  `json:"alt"`
	Title     string  `json:"title,omitempty"`
	Author    *Author `json:"author,omitempty"`
	EmbedCode string  `json:"embedCode,omitempty"`
}

// NewPhotoAsset builds a photo asset with attribution.
func NewPhotoAsset(source Source, url, alt, title string, author *Author) *Asset {
	if source == SourcePlaceholder {
		author = nil
	}
	return &Asset{
		Type:   TypePhoto,
		Source: source,
		URL:    url,
		Alt:    alt,
		Title:  title,
		Author: author,
	}
}

// NewGifAsset builds a gif asset. Gifs obtained from the gif adapter always
// carry embed code.
func NewGifAsset(source Source, url, alt, title, embedCode string) *Asset {
	return &Asset{
		Type:      TypeGif,
		Source:    source,
		URL:       url,
		Alt:       alt,
		Title:     title,
		EmbedCode: embedCode,
	}
}

// NewIllustrationAsset builds an illustration asset.
func NewIllustrationAsset(source Source, url, alt, title, embedCode string) *Asset {
	return &Asset{
		Type:      TypeIllustration,
		Source:    source,
		URL:       url,
		Alt:       alt,
		Title:     title,
		EmbedCode: embedCode,
	}
}

// Options tune provider-specific rendering of resolved images.
type Options struct {
	Width  int
	Height int
	Format string
	Color  string
	Mode   string
}
