package sources

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Kind is the type of a source location.
type Kind int

const (
	// Local is a file on the local file system.
	Local Kind = iota
	// HTTP is a file behind an http or https URL.
	HTTP
	// S3 is an object in an AWS S3 bucket.
	S3
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case HTTP:
		return "http"
	case S3:
		return "s3"
	default:
		return "local"
	}
}

// ErrUnknownScheme is returned for URLs other than http, https and s3.
var ErrUnknownScheme = errors.New("unsupported location scheme")

// Location is a parsed source location.
type Location struct {
	Kind Kind

	// Raw is the location as given by a user.
	Raw string

	// Bucket and Key are set for S3 locations.
	Bucket string
	Key    string
}

// IsValidURL checks if a string is an http or https URL.
func IsValidURL(str string) bool {
	u, err := url.Parse(str)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
}

// ParseLocation detects the kind of a location. Strings with an unknown
// scheme are rejected, everything without a scheme is a local path.
func ParseLocation(str string) (Location, error) {
	str = strings.TrimSpace(str)
	res := Location{Raw: str}
	if str == "" {
		return res, fmt.Errorf("empty source location")
	}

	switch {
	case strings.HasPrefix(str, "s3://"):
		u, err := url.Parse(str)
		if err != nil {
			return res, fmt.Errorf("cannot parse S3 location %s: %w", str, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return res, fmt.Errorf("S3 location %s needs bucket and key", str)
		}
		res.Kind = S3
		res.Bucket = u.Host
		res.Key = key
		return res, nil
	case IsValidURL(str):
		res.Kind = HTTP
		return res, nil
	case strings.Contains(str, "://"):
		return res, fmt.Errorf("%w: %s", ErrUnknownScheme, str)
	}

	res.Kind = Local
	return res, nil
}

// FileName returns the last path element of a location.
func (l Location) FileName() string {
	switch l.Kind {
	case S3:
		return path.Base(l.Key)
	case HTTP:
		if u, err := url.Parse(l.Raw); err == nil && u.Path != "" {
			return path.Base(u.Path)
		}
	}
	return path.Base(l.Raw)
}
