package stats

import "context"

// Counter keys in the persistent store.
const (
	KeyLinksScanned = "scameye-links-scanned"
	KeyThreatLinks  = "scameye-threat-links"
)

// Store is the persistent key-value store holding the counters.
// Implementations live in the storage package.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Counters is a point-in-time read of both counters.
type Counters struct {
	// LinksScanned is the number of links whose popup was shown.
	LinksScanned int64 `json:"links_scanned"`

	// ThreatLinks is the number of those links scored above 60.
	ThreatLinks int64 `json:"threat_links"`
}

// SafeLinks returns the scanned links that were not threats.
func (c Counters) SafeLinks() int64 {
	if c.ThreatLinks > c.LinksScanned {
		return 0
	}
	return c.LinksScanned - c.ThreatLinks
}
