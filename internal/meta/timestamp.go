package meta

import (
	"fmt"
	"time"
)

// TimestampConfig controls how creation timestamps are produced.
type TimestampConfig struct {
	UseUTC          bool
	SecondPrecision bool
	TrackIntervals  bool
}

// DefaultTimestampConfig returns UTC timestamps with sub-second precision
// and interval tracking enabled.
func DefaultTimestampConfig() TimestampConfig {
	return TimestampConfig{
		UseUTC:         true,
		TrackIntervals: true,
	}
}

// TimestampDetail carries derived information about a creation timestamp.
// SincePrevious is zero for the first timestamp a creator produces.
type TimestampDetail struct {
	UnixSeconds       float64       `json:"unix_seconds"`
	IsUTC             bool          `json:"is_utc"`
	SincePrevious     time.Duration `json:"since_previous"`
	MessagesPerSecond float64       `json:"messages_per_second,omitempty"`
}

// TimestampCreator produces creation timestamps for messages.
type TimestampCreator struct {
	config        TimestampConfig
	lastTimestamp time.Time
}

// NewTimestampCreator builds a creator with the given configuration.
func NewTimestampCreator(config TimestampConfig) *TimestampCreator {
	return &TimestampCreator{config: config}
}

// Create returns the next creation timestamp together with derived detail.
func (creator *TimestampCreator) Create() (time.Time, TimestampDetail) {
	timestamp := time.Now()
	if creator.config.UseUTC {
		timestamp = timestamp.UTC()
	}
	if creator.config.SecondPrecision {
		timestamp = timestamp.Truncate(time.Second)
	}

	detail := TimestampDetail{
		UnixSeconds: float64(timestamp.UnixNano()) / float64(time.Second),
		IsUTC:       timestamp.Location() == time.UTC,
	}
	if creator.config.TrackIntervals && !creator.lastTimestamp.IsZero() {
		interval := timestamp.Sub(creator.lastTimestamp)
		detail.SincePrevious = interval
		if interval > 0 {
			detail.MessagesPerSecond = float64(time.Second) / float64(interval)
		}
	}

	creator.lastTimestamp = timestamp
	return timestamp, detail
}

// FormatRFC3339 renders a timestamp in RFC 3339 form.
func FormatRFC3339(timestamp time.Time) string {
	return timestamp.Format(time.RFC3339)
}

// TimezoneConversion records one timezone adjustment.
type TimezoneConversion struct {
	FromZone    string    `json:"from_zone"`
	ToZone      string    `json:"to_zone"`
	OffsetHours float64   `json:"offset_hours"`
	IsDST       bool      `json:"is_dst"`
	Original    time.Time `json:"original"`
}

// TimezoneAdjuster converts timestamps between IANA zones and keeps a
// history of the conversions it performed.
type TimezoneAdjuster struct {
	defaultZone string
	history     []TimezoneConversion
}

// NewTimezoneAdjuster builds an adjuster. An empty default selects UTC.
func NewTimezoneAdjuster(defaultZone string) *TimezoneAdjuster {
	if defaultZone == "" {
		defaultZone = "UTC"
	}
	return &TimezoneAdjuster{defaultZone: defaultZone}
}

// Adjust converts a timestamp to the named IANA zone. An empty zone name
// selects the adjuster's default; unknown zone names are errors.
func (adjuster *TimezoneAdjuster) Adjust(timestamp time.Time, zoneName string) (time.Time, TimezoneConversion, error) {
	if zoneName == "" {
		zoneName = adjuster.defaultZone
	}
	location, loadError := time.LoadLocation(zoneName)
	if loadError != nil {
		return time.Time{}, TimezoneConversion{}, fmt.Errorf("load timezone %s: %w", zoneName, loadError)
	}

	adjusted := timestamp.In(location)
	fromZone, fromOffset := timestamp.Zone()
	toZone, toOffset := adjusted.Zone()
	conversion := TimezoneConversion{
		FromZone:    fromZone,
		ToZone:      toZone,
		OffsetHours: float64(toOffset-fromOffset) / 3600,
		IsDST:       adjusted.IsDST(),
		Original:    timestamp,
	}
	adjuster.history = append(adjuster.history, conversion)

	return adjusted, conversion, nil
}

// ConversionHistory returns the conversions performed so far.
func (adjuster *TimezoneAdjuster) ConversionHistory() []TimezoneConversion {
	return adjuster.history
}
