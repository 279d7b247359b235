package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlyerStatus is the lifecycle state stored on a flyer row.
type FlyerStatus string

const (
	FlyerStatusPending    FlyerStatus = "pending"
	FlyerStatusProcessing FlyerStatus = "processing"
	FlyerStatusCompleted  FlyerStatus = "completed"
	FlyerStatusFailed     FlyerStatus = "failed"
)

const (
	// DefaultValidityDays is used when the upstream validity window is unusable.
	DefaultValidityDays = 7

	// PlaceholderZipCode is stored when the observed ZIP cannot be sanitized.
	PlaceholderZipCode = "00000"
)

// FlyerSource is the raw flyer descriptor returned by the metadata endpoint.
type FlyerSource struct {
	MerchantID   string
	MerchantName string
	MerchantSlug string
	Categories   []string
	FlyerRunID   string
	FlyerName    string
	FlyerPath    string
	Width        int
	Height       int
	// ValidFrom and ValidTo carry unix seconds as received; they may be empty or malformed.
	ValidFrom string
	ValidTo   string
}

// HasDimensions reports whether the upstream declared pixel dimensions.
func (s FlyerSource) HasDimensions() bool {
	return s.Width > 0 && s.Height > 0
}

// Flyer is the persisted weekly circular for one store and ZIP.
type Flyer struct {
	ID          uuid.UUID
	StoreID     *uuid.UUID
	StoreName   string
	StoreSlug   string
	FlyerRunID  string
	FlyerName   string
	ZipCode     string
	ImageURLs   []string
	FlyerPath   string
	ValidFrom   time.Time
	ValidTo     time.Time
	Status      FlyerStatus
	ProcessedAt *time.Time
}

// NewFlyer builds the flyer row for a source observed in zipCode.
func NewFlyer(src FlyerSource, zipCode string, imageURLs []string, now time.Time) Flyer {
	validFrom, validTo := ResolveValidity(src.ValidFrom, src.ValidTo, now, DefaultValidityDays)

	return Flyer{
		ID:         uuid.New(),
		StoreName:  src.MerchantName,
		StoreSlug:  src.MerchantSlug,
		FlyerRunID: src.FlyerRunID,
		FlyerName:  src.FlyerName,
		ZipCode:    zipCode,
		ImageURLs:  imageURLs,
		FlyerPath:  src.FlyerPath,
		ValidFrom:  validFrom,
		ValidTo:    validTo,
		Status:     FlyerStatusPending,
	}
}

// ResolveValidity parses unix-second timestamps. When either value is
// unparsable, non-positive, or the window is inverted, it falls back to
// [now, now+days].
func ResolveValidity(rawFrom, rawTo string, now time.Time, days int) (time.Time, time.Time) {
	from, okFrom := parseUnixSeconds(rawFrom)
	to, okTo := parseUnixSeconds(rawTo)

	if !okFrom || !okTo || to.Before(from) {
		return now, now.AddDate(0, 0, days)
	}
	return from, to
}

func parseUnixSeconds(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs <= 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(secs), 0).UTC(), true
}

// PersistResult reports what the persister did with one flyer.
type PersistResult struct {
	FlyerID       uuid.UUID
	Created       bool
	ZipCorrected  bool
	DealsInserted int
}
