package s3

import (
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// DefaultTargetDir is the year/month directory used when the host supplies none.
func DefaultTargetDir(now time.Time) string {
	return now.UTC().Format("2006/01")
}

// ObjectKey builds "<prefix>/<targetDir>/<name>-<unix ms><ext>".
// Two uploads of the same name within one millisecond map to the same key.
func ObjectKey(prefix, targetDir, fileName string, now time.Time) string {
	ext := extension(fileName)
	base := strings.TrimSuffix(path.Base(fileName), ext)
	name := SanitizeName(base) + "-" + strconv.FormatInt(now.UnixMilli(), 10) + ext

	var parts []string
	for _, p := range []string{prefix, targetDir} {
		if p = strings.Trim(p, "/"); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(append(parts, name), "/")
}

// SanitizeName replaces every character outside [A-Za-z0-9_] with '_'.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}

// extension mirrors path.Ext except that a leading dot (".htaccess")
// is part of the name, not an extension.
func extension(fileName string) string {
	base := path.Base(fileName)
	ext := path.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

// BaseURL returns the URL prefix every object key is appended to, without a
// trailing slash.
func BaseURL(cfg Config) string {
	if cfg.AssetHost != "" {
		return strings.TrimRight(cfg.AssetHost, "/")
	}
	host := "s3"
	if cfg.Region != "us-east-1" {
		host = "s3-" + cfg.Region
	}
	return fmt.Sprintf("https://%s.amazonaws.com/%s", host, cfg.Bucket)
}

// PublicURL returns the externally reachable address of key.
func PublicURL(cfg Config, key string) string {
	return BaseURL(cfg) + "/" + key
}

// ResolveKey accepts either an object key or a URL returned by PublicURL
// and returns the object key.
func ResolveKey(cfg Config, ref string) string {
	if rest, ok := strings.CutPrefix(ref, BaseURL(cfg)+"/"); ok {
		ref = rest
	} else if u, ok := parseHTTPURL(ref); ok {
		ref = u.Path
		if cfg.AssetHost == "" {
			ref = strings.TrimPrefix(strings.TrimPrefix(ref, "/"), cfg.Bucket+"/")
		}
	}
	return strings.TrimPrefix(ref, "/")
}

// parseHTTPURL only accepts http(s) URLs with a host. Keys may contain a
// colon ("drafts:v2/a.png") and must not be mistaken for a URL scheme.
func parseHTTPURL(ref string) (*url.URL, bool) {
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return nil, false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u, true
	}
	return nil, false
}

// KeyFor resolves ref against this adapter's configuration.
func (s *Storage) KeyFor(ref string) string {
	return ResolveKey(s.cfg, ref)
}
