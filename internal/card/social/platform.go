// Package social classifies social-link platforms and keeps messaging links
// consistent with the phone number they were entered with.
package social

import (
	"regexp"
	"strings"
)

// Kind enumerates the platforms the card engine treats specially.
type Kind int

const (
	KindOther Kind = iota
	KindInstagram
	KindWhatsApp
	KindViber
	KindTelegram
	KindKakao
	KindWeChat
)

var kindNames = map[Kind]string{
	KindOther:     "other",
	KindInstagram: "instagram",
	KindWhatsApp:  "whatsapp",
	KindViber:     "viber",
	KindTelegram:  "telegram",
	KindKakao:     "kakao",
	KindWeChat:    "wechat",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "other"
}

var (
	messagingRe  = regexp.MustCompile(`(?i)^(whatsapp|whats\s*app|viber|kakaotalk|kakao\s*talk|wechat|we\s*chat|telegram)$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// messagingOrder is the precedence used when a compacted name could match
// more than one messaging platform.
var messagingOrder = []struct {
	needle string
	kind   Kind
}{
	{"whatsapp", KindWhatsApp},
	{"viber", KindViber},
	{"telegram", KindTelegram},
	{"kakao", KindKakao},
	{"wechat", KindWeChat},
}

// webIcons maps compacted platform names to icon keys for web-link platforms.
var webIcons = map[string]string{
	"facebook":  "facebook",
	"instagram": "instagram",
	"twitter":   "twitter",
	"x":         "twitter",
	"linkedin":  "linkedin",
	"github":    "github",
	"youtube":   "youtube",
	"tiktok":    "tiktok",
}

// Platform is a classified platform name. The zero value is an unnamed
// web-link platform.
type Platform struct {
	Kind Kind
	// Name is the trimmed name as the user entered it.
	Name string
}

// Parse classifies name once. Callers switch on the returned Kind instead of
// matching the name again.
func Parse(name string) Platform {
	trimmed := strings.TrimSpace(name)
	p := Platform{Kind: KindOther, Name: trimmed}
	key := compact(trimmed)

	if messagingRe.MatchString(trimmed) {
		for _, m := range messagingOrder {
			if strings.Contains(key, m.needle) {
				p.Kind = m.kind
				return p
			}
		}
		return p
	}
	if key == "instagram" {
		p.Kind = KindInstagram
	}
	return p
}

// IsMessaging reports whether the platform takes a phone number instead of a URL.
func (p Platform) IsMessaging() bool {
	switch p.Kind {
	case KindWhatsApp, KindViber, KindTelegram, KindKakao, KindWeChat:
		return true
	default:
		return false
	}
}

// Icon returns the icon key used by link renderers. Unknown platforms use "globe".
func (p Platform) Icon() string {
	if p.IsMessaging() {
		return p.Kind.String()
	}
	if icon, ok := webIcons[compact(p.Name)]; ok {
		return icon
	}
	return "globe"
}

// Classification is the result of Classify.
type Classification struct {
	IsMessaging bool     `json:"is_messaging" doc:"Whether the platform takes a phone number"`
	Platform    Platform `json:"-"`
}

// Classify reports whether name denotes a messaging platform. The match is
// anchored at both ends, so names that merely contain a messaging name are
// web links.
func Classify(name string) Classification {
	p := Parse(name)
	return Classification{IsMessaging: p.IsMessaging(), Platform: p}
}

// DeriveDeepLink builds the deep link for a messaging platform from a phone
// number. digits must already be digits only. An empty number or a
// non-messaging platform yields "".
func DeriveDeepLink(p Platform, digits string) string {
	if digits == "" {
		return ""
	}
	switch p.Kind {
	case KindWhatsApp:
		return "https://wa.me/" + digits
	case KindViber:
		return "viber://chat?number=" + digits
	case KindTelegram:
		return "https://t.me/" + digits
	case KindKakao:
		return "https://open.kakao.com/o/" + digits
	case KindWeChat:
		return "weixin://dl/chat?" + digits
	default:
		return ""
	}
}

func compact(name string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(name), "")
}
