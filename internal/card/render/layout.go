package render

import "strings"

const anonymousName = "Anonymous"

// professional lists every comma-separated email, phone and website as its
// own row and always shows a name.
type professional struct{}

func (professional) header(u *Person) Header {
	if u == nil {
		return placeholderHeader()
	}
	name := firstNonBlank(u.DisplayName, u.Name, u.Username, anonymousName)
	return Header{Name: name, Bio: u.Bio, AvatarURL: u.AvatarURL, Initials: initials(name)}
}

func (professional) contacts(u *Person) []Contact {
	if u == nil {
		return placeholderContacts()
	}
	var out []Contact
	for _, f := range []struct {
		kind  ContactKind
		value string
	}{
		{ContactEmail, u.Email},
		{ContactPhone, u.Phone},
		{ContactWebsite, u.Website},
	} {
		for _, v := range splitList(f.value) {
			out = append(out, contactRow(f.kind, v))
		}
	}
	if loc := strings.TrimSpace(u.Location); loc != "" {
		out = append(out, contactRow(ContactLocation, loc))
	}
	return out
}

// creative shows each contact field as a single row and leaves the name
// blank when the user has none.
type creative struct{}

func (creative) header(u *Person) Header {
	if u == nil {
		return placeholderHeader()
	}
	name := firstNonBlank(u.DisplayName, u.Name, u.Username)
	return Header{Name: name, Bio: u.Bio, AvatarURL: u.AvatarURL, Initials: initials(name)}
}

func (creative) contacts(u *Person) []Contact {
	if u == nil {
		return placeholderContacts()
	}
	var out []Contact
	for _, f := range []struct {
		kind  ContactKind
		value string
	}{
		{ContactEmail, u.Email},
		{ContactPhone, u.Phone},
		{ContactWebsite, u.Website},
		{ContactLocation, u.Location},
	} {
		if v := strings.TrimSpace(f.value); v != "" {
			out = append(out, contactRow(f.kind, v))
		}
	}
	return out
}

func placeholderHeader() Header {
	return Header{Name: PlaceholderName, Bio: PlaceholderBio, Initials: initials(PlaceholderName)}
}

// placeholderContacts shows one empty row per kind so previews show where
// contact details go.
func placeholderContacts() []Contact {
	return []Contact{
		{Kind: ContactEmail},
		{Kind: ContactPhone},
		{Kind: ContactWebsite},
		{Kind: ContactLocation},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
