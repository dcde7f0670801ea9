package domain

import "time"

// SocialLinks are the optional social profiles shown on a storefront.
type SocialLinks struct {
	Instagram *string `json:"instagram,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	YouTube   *string `json:"youtube,omitempty"`
	TikTok    *string `json:"tiktok,omitempty"`
}

// StoreSettings is the per-artist storefront configuration. BannerImage holds a direct URL.
type StoreSettings struct {
	ArtistID    string      `json:"artistId"`
	StoreName   string      `json:"storeName"`
	StoreBio    string      `json:"storeBio"`
	BannerImage *string     `json:"bannerImage,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// MediaReference is an uploaded blob. DirectURL resolves publicly once the upload completed.
type MediaReference struct {
	Path        string `json:"path"`
	DirectURL   string `json:"directUrl"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}
