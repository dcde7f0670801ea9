package seed

import (
	"encoding/json"
	"fmt"

	"artisanhub/internal/domain"
)

func socialLinksJSON(in map[string]string) (string, error) {
	var links domain.SocialLinks
	for k, v := range in {
		v := v
		switch k {
		case "instagram":
			links.Instagram = &v
		case "facebook":
			links.Facebook = &v
		case "twitter":
			links.Twitter = &v
		case "youtube":
			links.YouTube = &v
		case "tiktok":
			links.TikTok = &v
		default:
			return "", fmt.Errorf("unknown social link %q", k)
		}
	}
	b, err := json.Marshal(links)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
