package payments

import (
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Inventory lists and removes stored screenshots. storage.System satisfies it.
type Inventory interface {
	Keys(ctx context.Context, prefix string) ([]string, error)
	KeyFromURL(url string) (string, bool)
	Delete(ctx context.Context, key string) error
}

// Orphan is a stored screenshot no registration points at. It is left behind
// when the upload succeeds and the record write fails.
type Orphan struct {
	Key            string    `json:"key"`
	RegistrationID uuid.UUID `json:"registration_id"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// Report is the result of comparing stored screenshots with record locations.
type Report struct {
	Orphans []Orphan `json:"orphans"`
	// Recent holds unreferenced objects younger than the grace period; their
	// record write may still be in flight.
	Recent []Orphan `json:"recent"`
	// Missing holds record locations whose object is not in storage.
	Missing []string `json:"missing"`
	// Unrecognized holds keys under the prefix that do not follow the key format.
	Unrecognized []string `json:"unrecognized"`
}

// Reconcile compares every key under cfg.ScreenshotPrefix with locations.
// Nothing is deleted.
func Reconcile(ctx context.Context, inv Inventory, locations []string, cfg Config, grace time.Duration, now time.Time) (*Report, error) {
	keys, err := inv.Keys(ctx, cfg.ScreenshotPrefix)
	if err != nil {
		return nil, fmt.Errorf("list stored screenshots: %w", err)
	}

	referenced := make(map[string]bool, len(locations))
	report := &Report{
		Orphans:      make([]Orphan, 0),
		Recent:       make([]Orphan, 0),
		Missing:      make([]string, 0),
		Unrecognized: make([]string, 0),
	}

	stored := make(map[string]bool, len(keys))
	for _, k := range keys {
		stored[k] = true
	}

	for _, loc := range locations {
		key, ok := inv.KeyFromURL(loc)
		if !ok {
			continue
		}
		referenced[key] = true
		if !stored[key] {
			report.Missing = append(report.Missing, loc)
		}
	}

	for _, key := range keys {
		if referenced[key] {
			continue
		}
		id, at, ok := ParseKey(cfg.ScreenshotPrefix, key)
		if !ok {
			report.Unrecognized = append(report.Unrecognized, key)
			continue
		}
		o := Orphan{Key: key, RegistrationID: id, UploadedAt: at}
		if now.Sub(at) < grace {
			report.Recent = append(report.Recent, o)
			continue
		}
		report.Orphans = append(report.Orphans, o)
	}

	return report, nil
}

// Prune deletes every orphan in r and returns the keys removed before the
// first failure.
func Prune(ctx context.Context, inv Inventory, r *Report) ([]string, error) {
	removed := make([]string, 0, len(r.Orphans))
	for _, o := range r.Orphans {
		if err := inv.Delete(ctx, o.Key); err != nil {
			return removed, fmt.Errorf("delete %s: %w", o.Key, err)
		}
		removed = append(removed, o.Key)
	}
	return removed, nil
}

// ParseKey splits a screenshot key of the form prefix/{id}-{unixMillis}.{ext}.
func ParseKey(prefix, key string) (uuid.UUID, time.Time, bool) {
	rest, ok := strings.CutPrefix(key, prefix+"/")
	if !ok || strings.Contains(rest, "/") {
		return uuid.Nil, time.Time{}, false
	}

	base := strings.TrimSuffix(rest, path.Ext(rest))
	i := strings.LastIndex(base, "-")
	if i < 0 {
		return uuid.Nil, time.Time{}, false
	}

	id, err := uuid.Parse(base[:i])
	if err != nil {
		return uuid.Nil, time.Time{}, false
	}
	ms, err := strconv.ParseInt(base[i+1:], 10, 64)
	if err != nil || ms < 0 {
		return uuid.Nil, time.Time{}, false
	}
	return id, time.UnixMilli(ms), true
}
