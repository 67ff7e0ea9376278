package service

import "testing"

func TestFullNameFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/widgets.git", "acme/widgets"},
		{"https://github.com/acme/widgets", "acme/widgets"},
		{"https://github.com/acme/widgets/", "acme/widgets"},
		{"git@github.com:acme/widgets.git", "acme/widgets"},
		{"ssh://git@github.com/acme/widgets.git", "acme/widgets"},
	}

	for _, c := range cases {
		got, err := FullNameFromURL(c.url)
		if err != nil {
			t.Errorf("FullNameFromURL(%q): %v", c.url, err)
			continue
		}
		if got != c.want {
			t.Errorf("FullNameFromURL(%q) = %q, want %q", c.url, got, c.want)
		}
	}
}

func TestFullNameFromURL_Invalid(t *testing.T) {
	for _, url := range []string{"", "widgets", "https://"} {
		if _, err := FullNameFromURL(url); err == nil {
			t.Errorf("FullNameFromURL(%q): expected error", url)
		}
	}
}
