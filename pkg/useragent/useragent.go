package useragent

import "strings"

// DeviceType classifies the requesting client's form factor.
type DeviceType string

const (
	DeviceTypeMobile  DeviceType = "mobile"
	DeviceTypeDesktop DeviceType = "desktop"
	DeviceTypeTablet  DeviceType = "tablet"
	DeviceTypeBot     DeviceType = "bot"
	DeviceTypeTV      DeviceType = "tv"
	DeviceTypeConsole DeviceType = "console"
	DeviceTypeUnknown DeviceType = "unknown"
)

var botMarkers = []string{"bot", "crawler", "spider", "slurp", "facebookexternalhit", "whatsapp", "telegrambot"}

// UserAgent is the result of parsing a User-Agent header value.
type UserAgent struct {
	raw          string
	deviceType   DeviceType
	os           string
	browserName  string
	browserVer   string
	deviceModel  string
}

// New builds a UserAgent directly from already-known fields, used as a
// fallback when Parse fails but processing must continue.
func New(raw, deviceType, os, browserName, browserVer, deviceModel string) *UserAgent {
	return &UserAgent{
		raw:         raw,
		deviceType:  DeviceType(deviceType),
		os:          os,
		browserName: browserName,
		browserVer:  browserVer,
		deviceModel: deviceModel,
	}
}

// Parse extracts device, OS, and browser information from a User-Agent
// header value using keyword matching — sufficient for session-fingerprint
// bucketing without pulling in a full UA-parsing database.
func Parse(raw string) (*UserAgent, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyUserAgent
	}
	lower := strings.ToLower(raw)

	ua := &UserAgent{raw: raw, deviceType: DeviceTypeUnknown, os: "unknown", browserName: "unknown"}

	for _, marker := range botMarkers {
		if strings.Contains(lower, marker) {
			ua.deviceType = DeviceTypeBot
			ua.browserName = marker
			return ua, nil
		}
	}

	switch {
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet"):
		ua.deviceType = DeviceTypeTablet
	case strings.Contains(lower, "iphone") || strings.Contains(lower, "android") && strings.Contains(lower, "mobile"):
		ua.deviceType = DeviceTypeMobile
	case strings.Contains(lower, "smart-tv") || strings.Contains(lower, "googletv") || strings.Contains(lower, "appletv"):
		ua.deviceType = DeviceTypeTV
	case strings.Contains(lower, "playstation") || strings.Contains(lower, "xbox") || strings.Contains(lower, "nintendo"):
		ua.deviceType = DeviceTypeConsole
	case strings.Contains(lower, "windows") || strings.Contains(lower, "macintosh") || strings.Contains(lower, "linux"):
		ua.deviceType = DeviceTypeDesktop
	default:
		return ua, ErrUnknownDevice
	}

	switch {
	case strings.Contains(lower, "iphone"):
		ua.os, ua.deviceModel = "ios", "iphone"
	case strings.Contains(lower, "ipad"):
		ua.os, ua.deviceModel = "ios", "ipad"
	case strings.Contains(lower, "android"):
		ua.os = "android"
	case strings.Contains(lower, "windows"):
		ua.os = "windows"
	case strings.Contains(lower, "macintosh") || strings.Contains(lower, "mac os"):
		ua.os = "macos"
	case strings.Contains(lower, "linux"):
		ua.os = "linux"
	}

	switch {
	case strings.Contains(lower, "edg/"):
		ua.browserName, ua.browserVer = "edge", versionAfter(lower, "edg/")
	case strings.Contains(lower, "chrome/"):
		ua.browserName, ua.browserVer = "chrome", versionAfter(lower, "chrome/")
	case strings.Contains(lower, "firefox/"):
		ua.browserName, ua.browserVer = "firefox", versionAfter(lower, "firefox/")
	case strings.Contains(lower, "safari/") && strings.Contains(lower, "version/"):
		ua.browserName, ua.browserVer = "safari", versionAfter(lower, "version/")
	}

	return ua, nil
}

func versionAfter(s, marker string) string {
	idx := strings.Index(s, marker)
	if idx < 0 {
		return ""
	}
	rest := s[idx+len(marker):]
	end := strings.IndexAny(rest, " ;)")
	if end < 0 {
		return rest
	}
	return rest[:end]
}

func (u *UserAgent) DeviceType() DeviceType { return u.deviceType }
func (u *UserAgent) OS() string             { return u.os }
func (u *UserAgent) BrowserName() string    { return u.browserName }
func (u *UserAgent) BrowserVer() string     { return u.browserVer }
func (u *UserAgent) DeviceModel() string    { return u.deviceModel }
func (u *UserAgent) IsMobile() bool         { return u.deviceType == DeviceTypeMobile }
func (u *UserAgent) IsBot() bool            { return u.deviceType == DeviceTypeBot }

// GetShortIdentifier returns a compact "os/browser" label for logging.
func (u *UserAgent) GetShortIdentifier() string {
	if u.deviceType == DeviceTypeBot {
		return u.browserName
	}
	return u.os + "/" + u.browserName
}
