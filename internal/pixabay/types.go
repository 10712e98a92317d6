package pixabay

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// SearchResponse mirrors the payload returned by the search endpoint.
type SearchResponse struct {
	Total     int     `json:"total"`
	TotalHits int     `json:"totalHits"`
	Hits      []Image `json:"hits"`
}

// Image describes one search hit.
type Image struct {
	ID            int64  `json:"id"`
	PageURL       string `json:"pageURL"`
	Type          string `json:"type"`
	Tags          string `json:"tags"`
	PreviewURL    string `json:"previewURL"`
	PreviewWidth  int    `json:"previewWidth"`
	PreviewHeight int    `json:"previewHeight"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	ImageWidth    int    `json:"imageWidth"`
	ImageHeight   int    `json:"imageHeight"`
	ImageSize     int64  `json:"imageSize"`
	Views         int    `json:"views"`
	Downloads     int    `json:"downloads"`
	Likes         int    `json:"likes"`
	Comments      int    `json:"comments"`
	UserID        int64  `json:"user_id"`
	User          string `json:"user"`
}

// FullURL returns the best full-resolution URL available.
func (img Image) FullURL() string {
	if u := strings.TrimSpace(img.LargeImageURL); u != "" {
		return u
	}
	return strings.TrimSpace(img.WebformatURL)
}

// AspectRatio returns height divided by width, defaulting to 1 when the
// dimensions are unknown.
func (img Image) AspectRatio() float64 {
	w, h := img.ImageWidth, img.ImageHeight
	if w <= 0 || h <= 0 {
		w, h = img.PreviewWidth, img.PreviewHeight
	}
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(h) / float64(w)
}

// FileName derives the local file name from the last path segment of the
// thumbnail URL, falling back to "<id>.jpg".
func (img Image) FileName() string {
	if u, err := url.Parse(strings.TrimSpace(img.PreviewURL)); err == nil {
		base := path.Base(u.Path)
		if base != "." && base != "/" && base != "" {
			return base
		}
	}
	return fmt.Sprintf("%d.jpg", img.ID)
}

// TagList splits the comma separated tags.
func (img Image) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(img.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
