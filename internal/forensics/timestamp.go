// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package forensics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/seafence/darkwatch/internal/logging"
	"github.com/seafence/darkwatch/internal/metrics"
	"github.com/seafence/darkwatch/internal/models"
)

const (
	// DefaultAuthorityURL is the remote time authority queried for the
	// Indian Standard Time seal.
	DefaultAuthorityURL = "http://worldtimeapi.org/api/timezone/Asia/Kolkata"

	// DefaultAuthorityTimeout bounds the remote time fetch.
	DefaultAuthorityTimeout = 10 * time.Second

	// TimezoneLabel is stamped on every timestamp record regardless of
	// source.
	TimezoneLabel = "Asia/Kolkata (IST, UTC+05:30)"

	// SourceRemote labels records derived from the remote authority.
	SourceRemote = "worldtimeapi.org (Internet)"

	// SourceLocalFallback labels records derived from the system clock.
	SourceLocalFallback = "System Clock (Fallback)"

	timeLayout = "2006-01-02 15:04:05"
)

// istZone is the fixed IST offset, UTC+05:30. The fallback path never
// consults the system timezone database.
var istZone = time.FixedZone("IST", 5*60*60+30*60)

// TimestampSource retrieves the time-seal for an evidence bundle.
// Implementations never return an error: failure is always absorbed
// into a fallback, per the degraded-but-never-aborting pipeline
// contract.
type TimestampSource interface {
	Timestamp(ctx context.Context) models.TimestampRecord
}

// LocalClock derives the time-seal from the local system clock,
// converted to IST via the fixed offset.
type LocalClock struct {
	// Now is injectable for tests. Default: time.Now.
	Now func() time.Time
}

// Timestamp implements TimestampSource.
func (c *LocalClock) Timestamp(_ context.Context) models.TimestampRecord {
	now := time.Now
	if c != nil && c.Now != nil {
		now = c.Now
	}
	utc := now().UTC()
	return record(utc.In(istZone), utc, SourceLocalFallback)
}

// RemoteAuthority fetches the current IST time from a remote time
// authority with a bounded wait, falling back to a LocalClock on any
// failure: unreachable host, non-2xx status, malformed response, or
// timeout. One shot, no retries.
type RemoteAuthority struct {
	// URL of the authority endpoint. Default: DefaultAuthorityURL.
	URL string

	// Timeout bounds the fetch. Default: DefaultAuthorityTimeout.
	Timeout time.Duration

	// Client is injectable for tests. Default: http.DefaultClient.
	Client *http.Client

	// Fallback is consulted when the remote fetch fails.
	// Default: zero-value LocalClock.
	Fallback TimestampSource
}

// authorityResponse is the subset of the worldtimeapi payload we use.
type authorityResponse struct {
	Datetime string `json:"datetime"`
}

// Timestamp implements TimestampSource.
func (r *RemoteAuthority) Timestamp(ctx context.Context) models.TimestampRecord {
	ist, err := r.fetch(ctx)
	if err != nil {
		metrics.TimestampFallbacks.Inc()
		logging.Warn().Err(err).Msg("time authority unavailable, falling back to system clock")
		fallback := r.Fallback
		if fallback == nil {
			fallback = &LocalClock{}
		}
		return fallback.Timestamp(ctx)
	}

	rec := record(ist, ist.UTC(), SourceRemote)
	logging.Info().Str("ist", rec.DatetimeIST).Msg("time-seal obtained from remote authority")
	return rec
}

func (r *RemoteAuthority) fetch(ctx context.Context) (time.Time, error) {
	url := r.URL
	if url == "" {
		url = DefaultAuthorityURL
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultAuthorityTimeout
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch time: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return time.Time{}, fmt.Errorf("time authority returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return time.Time{}, fmt.Errorf("read response: %w", err)
	}

	var parsed authorityResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return time.Time{}, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Datetime == "" {
		return time.Time{}, fmt.Errorf("response missing datetime field")
	}

	// The authority returns ISO-8601 with offset, with or without
	// fractional seconds, e.g. 2026-02-18T23:05:23.123456+05:30.
	ist, err := time.Parse(time.RFC3339Nano, parsed.Datetime)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse datetime %q: %w", parsed.Datetime, err)
	}

	return ist, nil
}

func record(ist, utc time.Time, source string) models.TimestampRecord {
	return models.TimestampRecord{
		DatetimeIST: ist.Format(timeLayout),
		DatetimeUTC: utc.Format(timeLayout),
		Source:      source,
		Timezone:    TimezoneLabel,
	}
}
