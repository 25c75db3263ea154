package utils

import (
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"
)

var Log = logrus.New()

func SetLogLevel(level string) {
	// We are not using logrus' trace and panic levels
	switch strings.ToLower(level) {
	case "debug":
		Log.SetLevel(log.DebugLevel)
	case "info":
		Log.SetLevel(log.InfoLevel)
	case "warning", "warn":
		Log.SetLevel(log.WarnLevel)
	case "error":
		Log.SetLevel(log.ErrorLevel)
	case "fatal":
		Log.SetLevel(log.FatalLevel)
	default:
		log.Fatal("Bad error level string")
	}
}

// NormalizeShopSlug extracts the canonical shop slug from operator input,
// which may be a full shop URL (any spelling, with or without query string)
// or a bare slug. Returns "" when no slug can be extracted.
func NormalizeShopSlug(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "/") || strings.Contains(s, "?") {
		if !strings.Contains(s, "://") {
			s = "https://" + s
		}
		u, err := url.Parse(s)
		if err != nil {
			return ""
		}
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		for i, seg := range segments {
			if seg == "shop" && i+1 < len(segments) {
				return strings.ToLower(segments[i+1])
			}
		}
		// Not a /shop/<slug> URL, take the last path segment if any
		if last := segments[len(segments)-1]; last != "" {
			return strings.ToLower(last)
		}
		return ""
	}

	return strings.ToLower(s)
}
