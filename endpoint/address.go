package endpoint

import (
	"errors"
	"strings"
)

// DefaultScheme is prepended to addresses stored without one.
const DefaultScheme = "https"

// ErrEmptyAddress is returned by Normalize for blank input.
var ErrEmptyAddress = errors.New("endpoint: empty address")

// Address is a normalized upstream base URL with an explicit scheme and
// no trailing slash.
type Address string

// Normalize trims raw, prefixes the default scheme when raw has no
// http or https scheme, and strips trailing slashes.
func Normalize(raw string) (Address, error) {
	return NormalizeWithScheme(raw, DefaultScheme)
}

// NormalizeWithScheme is Normalize with a custom default scheme.
func NormalizeWithScheme(raw, scheme string) (Address, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrEmptyAddress
	}
	prefix := scheme + "://"
	lower := strings.ToLower(s)
	for _, p := range []string{"http://", "https://"} {
		if strings.HasPrefix(lower, p) {
			prefix, s = s[:len(p)], s[len(p):]
			break
		}
	}
	s = strings.TrimRight(s, "/")
	if s == "" {
		return "", ErrEmptyAddress
	}
	s = prefix + s
	return Address(s), nil
}

// Join appends path to the address with exactly one slash between them.
func (a Address) Join(path string) string {
	return string(a) + "/" + strings.TrimLeft(path, "/")
}

// String returns the address.
func (a Address) String() string { return string(a) }
