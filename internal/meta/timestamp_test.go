package meta_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cognitus/cognitus/internal/meta"
)

func TestCreateTimestampUTC(t *testing.T) {
	creator := meta.NewTimestampCreator(meta.DefaultTimestampConfig())

	first, firstDetail := creator.Create()
	if first.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", first.Location())
	}
	if !firstDetail.IsUTC {
		t.Fatalf("expected IsUTC detail")
	}
	if firstDetail.SincePrevious != 0 {
		t.Fatalf("expected no interval on first timestamp, got %v", firstDetail.SincePrevious)
	}
	expectedUnix := float64(first.UnixNano()) / float64(time.Second)
	if math.Abs(firstDetail.UnixSeconds-expectedUnix) > 1e-6 {
		t.Fatalf("expected unix seconds %f, got %f", expectedUnix, firstDetail.UnixSeconds)
	}

	second, secondDetail := creator.Create()
	if second.Before(first) {
		t.Fatalf("expected monotonic timestamps, got %v before %v", second, first)
	}
	if secondDetail.SincePrevious < 0 {
		t.Fatalf("expected non-negative interval, got %v", secondDetail.SincePrevious)
	}
}

func TestCreateTimestampSecondPrecision(t *testing.T) {
	creator := meta.NewTimestampCreator(meta.TimestampConfig{UseUTC: true, SecondPrecision: true})

	timestamp, _ := creator.Create()
	if timestamp.Nanosecond() != 0 {
		t.Fatalf("expected second precision, got %d nanoseconds", timestamp.Nanosecond())
	}
}

func TestCreateTimestampLocal(t *testing.T) {
	creator := meta.NewTimestampCreator(meta.TimestampConfig{})

	_, detail := creator.Create()
	if detail.IsUTC {
		t.Fatalf("expected local timestamp detail")
	}
}

func TestFormatRFC3339(t *testing.T) {
	timestamp := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	formatted := meta.FormatRFC3339(timestamp)
	if formatted != "2024-03-01T10:30:00Z" {
		t.Fatalf("unexpected RFC 3339 rendering %q", formatted)
	}
}

func TestAdjustTimezoneWinter(t *testing.T) {
	adjuster := meta.NewTimezoneAdjuster("")
	winter := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	adjusted, conversion, adjustError := adjuster.Adjust(winter, "America/New_York")
	if adjustError != nil {
		t.Fatalf("Adjust error: %v", adjustError)
	}
	if !adjusted.Equal(winter) {
		t.Fatalf("expected same instant after adjustment")
	}
	if adjusted.Hour() != 7 {
		t.Fatalf("expected 07:00 in New York, got %d", adjusted.Hour())
	}
	if conversion.OffsetHours != -5 {
		t.Fatalf("expected -5 hour offset, got %f", conversion.OffsetHours)
	}
	if conversion.IsDST {
		t.Fatalf("expected standard time in January")
	}
	if conversion.FromZone != "UTC" || conversion.ToZone != "EST" {
		t.Fatalf("unexpected zones %q -> %q", conversion.FromZone, conversion.ToZone)
	}
	if !conversion.Original.Equal(winter) {
		t.Fatalf("expected original timestamp preserved")
	}
}

func TestAdjustTimezoneSummer(t *testing.T) {
	adjuster := meta.NewTimezoneAdjuster("")
	summer := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	adjusted, conversion, adjustError := adjuster.Adjust(summer, "America/New_York")
	if adjustError != nil {
		t.Fatalf("Adjust error: %v", adjustError)
	}
	if adjusted.Hour() != 8 {
		t.Fatalf("expected 08:00 in New York, got %d", adjusted.Hour())
	}
	if conversion.OffsetHours != -4 {
		t.Fatalf("expected -4 hour offset, got %f", conversion.OffsetHours)
	}
	if !conversion.IsDST {
		t.Fatalf("expected daylight saving time in July")
	}
}

func TestAdjustTimezoneDefaultZone(t *testing.T) {
	adjuster := meta.NewTimezoneAdjuster("")
	instant := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	adjusted, conversion, adjustError := adjuster.Adjust(instant, "")
	if adjustError != nil {
		t.Fatalf("Adjust error: %v", adjustError)
	}
	if adjusted.Location() != time.UTC {
		t.Fatalf("expected UTC default, got %v", adjusted.Location())
	}
	if conversion.OffsetHours != 0 {
		t.Fatalf("expected zero offset, got %f", conversion.OffsetHours)
	}
}

func TestAdjustTimezoneUnknownZone(t *testing.T) {
	adjuster := meta.NewTimezoneAdjuster("")

	_, _, adjustError := adjuster.Adjust(time.Now(), "Mars/Olympus")
	if adjustError == nil {
		t.Fatalf("expected error for unknown zone")
	}
	if !strings.Contains(adjustError.Error(), "Mars/Olympus") {
		t.Fatalf("expected error to name the zone, got %v", adjustError)
	}
}

func TestConversionHistory(t *testing.T) {
	adjuster := meta.NewTimezoneAdjuster("UTC")
	instant := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	if _, _, adjustError := adjuster.Adjust(instant, "Europe/Berlin"); adjustError != nil {
		t.Fatalf("Adjust error: %v", adjustError)
	}
	if _, _, adjustError := adjuster.Adjust(instant, "Asia/Tokyo"); adjustError != nil {
		t.Fatalf("Adjust error: %v", adjustError)
	}

	history := adjuster.ConversionHistory()
	if len(history) != 2 {
		t.Fatalf("expected two conversions, got %d", len(history))
	}
	if history[0].ToZone != "CEST" {
		t.Fatalf("expected CEST conversion first, got %q", history[0].ToZone)
	}
	if history[1].ToZone != "JST" {
		t.Fatalf("expected JST conversion second, got %q", history[1].ToZone)
	}
}
