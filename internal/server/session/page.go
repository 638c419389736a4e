// Package session owns per-visitor state: which page a visitor is on, who is
// logged in and the pending input, and the actions that move between pages.
package session

import "fmt"

// Page is a screen of the application.
type Page int

const (
	PageSignup Page = iota
	PageLogin
	PageHome
)

var pageNames = [...]string{"signup", "login", "home"}

func (p Page) String() string {
	if p < 0 || int(p) >= len(pageNames) {
		return fmt.Sprintf("Page(%d)", int(p))
	}
	return pageNames[p]
}

// ParsePage is the inverse of String.
func ParsePage(s string) (Page, error) {
	for i, n := range pageNames {
		if n == s {
			return Page(i), nil
		}
	}
	return 0, fmt.Errorf("unknown page %q", s)
}

func (p Page) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(pageNames) {
		return nil, fmt.Errorf("invalid page %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *Page) UnmarshalText(b []byte) error {
	v, err := ParsePage(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
