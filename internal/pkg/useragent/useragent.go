// Package useragent derives a coarse device/browser descriptor from the
// User-Agent header. The result is informational only and never used for
// security decisions.
package useragent

import "strings"

type Info struct {
	Device  string
	Browser string
}

func Parse(ua string) Info {
	return Info{
		Device:  device(ua),
		Browser: browser(ua),
	}
}

func device(ua string) string {
	lower := strings.ToLower(ua)
	switch {
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet"):
		return "Tablet"
	case strings.Contains(lower, "mobi") || strings.Contains(lower, "android") || strings.Contains(lower, "iphone"):
		return "Mobile"
	default:
		return "Desktop"
	}
}

func browser(ua string) string {
	switch {
	case strings.Contains(ua, "Edg/"):
		return "Edge"
	case strings.Contains(ua, "OPR/") || strings.Contains(ua, "Opera"):
		return "Opera"
	case strings.Contains(ua, "Chrome/"):
		return "Chrome"
	case strings.Contains(ua, "Firefox/"):
		return "Firefox"
	case strings.Contains(ua, "Safari/"):
		return "Safari"
	case ua == "":
		return "Unknown"
	default:
		return "Unknown"
	}
}
