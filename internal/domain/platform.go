package domain

type Platform string

const (
	PlatformFacebook Platform = "facebook"
	PlatformTikTok   Platform = "tiktok"
	PlatformLinkedIn Platform = "linkedin"
	PlatformYouTube  Platform = "youtube"
)

// Platforms is the fixed extraction order. Display names seen first on an
// earlier platform win when accounts merge.
var Platforms = []Platform{
	PlatformFacebook,
	PlatformTikTok,
	PlatformLinkedIn,
	PlatformYouTube,
}

// Tag returns the value written to the Platform column. Facebook rows carry the
// publisher platform reported by the API instead.
func (p Platform) Tag() string {
	switch p {
	case PlatformFacebook:
		return "Facebook"
	case PlatformTikTok:
		return "TikTok"
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformYouTube:
		return "YouTube"
	}
	return string(p)
}

func (p Platform) Valid() bool {
	for _, platform := range Platforms {
		if p == platform {
			return true
		}
	}
	return false
}
