package cache

import (
	"fmt"
	"time"
)

// Header is one response header pair. HeadersFor returns them in a fixed
// order so responses stay byte-stable for intermediaries.
type Header struct {
	Name  string
	Value string
}

// HeadersFor synthesizes the browser and CDN cache-control headers for a
// TTL. The CDN header mirrors max-age as s-maxage so an intermediary CDN
// can cache independently of browser policy.
func HeadersFor(ttl time.Duration) []Header {
	secs := int(ttl.Seconds())
	return []Header{
		{Name: "Cache-Control", Value: fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", secs, secs*2)},
		{Name: "CDN-Cache-Control", Value: fmt.Sprintf("max-age=%d, s-maxage=%d, stale-while-revalidate=%d", secs, secs, secs*2)},
		{Name: "Vary", Value: "Accept-Encoding"},
	}
}
