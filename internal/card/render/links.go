package render

import "github.com/janisto/cardfolio/internal/card/social"

const maxGridColumns = 3

// grid shows icon tiles labeled with the platform name.
type grid struct{}

func (grid) render(links []social.Link) *Links {
	items := items(links, func(_ social.Link, p social.Platform) string {
		return p.Name
	})
	if len(items) == 0 {
		return nil
	}
	return &Links{
		Style:   ConnectGrid,
		Heading: ConnectHeading,
		Columns: min(len(items), maxGridColumns),
		Items:   items,
	}
}

// list shows one row per link labeled with the handle the user entered.
type list struct{}

func (list) render(links []social.Link) *Links {
	items := items(links, func(l social.Link, p social.Platform) string {
		if l.DisplayName != "" {
			return l.DisplayName
		}
		return p.Name
	})
	if len(items) == 0 {
		return nil
	}
	return &Links{
		Style:   ConnectList,
		Heading: ConnectHeading,
		Columns: 1,
		Items:   items,
	}
}

// items keeps visible links that have somewhere to go, in stored order.
func items(links []social.Link, label func(social.Link, social.Platform) string) []LinkItem {
	var out []LinkItem
	for _, l := range social.Visible(links) {
		if l.URL == "" {
			continue
		}
		p := l.Kind()
		out = append(out, LinkItem{
			Platform:  p.Name,
			Label:     label(l, p),
			URL:       l.URL,
			Icon:      p.Icon(),
			Messaging: p.IsMessaging(),
		})
	}
	return out
}
