// Darkwatch - Maritime Dark Vessel Detection and Evidence Sealing
// Copyright 2026 Seafence Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/seafence/darkwatch

package detect

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/seafence/darkwatch/internal/logging"
	"github.com/seafence/darkwatch/internal/metrics"
	"github.com/seafence/darkwatch/internal/models"
)

// detectionPrompt instructs the vision model to return a bare JSON
// array of detection records.
const detectionPrompt = `You are a maritime radar analyst. Analyze this SAR (Synthetic Aperture Radar)
satellite image of the ocean. Look for bright white dots or shapes that indicate the
presence of metal vessels (ships/boats) on the water surface.

For each vessel you detect, provide the following information in a JSON array:
- vessel_id: A unique label like "RADAR_001", "RADAR_002", etc.
- vessel_type: Your best guess (e.g., "Industrial Trawler", "Cargo Ship", "Tanker", "Fishing Boat", "Unknown Vessel")
- estimated_length_m: Estimated length in meters (integer)
- estimated_width_m: Estimated width in meters (integer)
- confidence: Detection confidence as a percentage (integer, 0-100)
- relative_position: A brief description of where in the image the vessel appears (e.g., "center-left", "upper-right")

IMPORTANT: Return ONLY a valid JSON array. No markdown formatting, no code fences, no explanation.
If no vessels are detected, return an empty array: []`

const (
	// DefaultEndpoint is the vision-model API base.
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the vision model asked to analyze the scene.
	DefaultModel = "gemini-2.0-flash"

	// DefaultTimeout bounds the vision call. One shot, no retries.
	DefaultTimeout = 30 * time.Second
)

// VisionDetector sends the SAR image to a vision-model API and parses
// the detection array out of the model response. Every failure mode
// (no credential, unreachable endpoint, malformed payload) degrades to
// the Fallback detector with a warning; Detect never returns an error
// to the pipeline.
type VisionDetector struct {
	APIKey   string
	Endpoint string
	Model    string
	Timeout  time.Duration

	// Client is injectable for tests. Default: http.DefaultClient.
	Client *http.Client

	// Fallback handles every degraded path. Required.
	Fallback Detector
}

// generateRequest is the minimal generateContent request body.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// generateResponse is the subset of the response we read.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Detect implements Detector.
func (d *VisionDetector) Detect(ctx context.Context, imagePath string) ([]models.RadarDetection, error) {
	if d.APIKey == "" {
		// ConfigurationGap: demo mode without a credential.
		logging.Warn().Msg("no vision API key configured, using simulated detections")
		return d.fallback(ctx, imagePath, metrics.ReasonConfigurationGap)
	}

	detections, err := d.callVisionAPI(ctx, imagePath)
	if err != nil {
		reason := metrics.ReasonExternalService
		if isMalformed(err) {
			reason = metrics.ReasonMalformedResponse
		}
		logging.Warn().Err(err).Msg("vision detection failed, using simulated detections")
		return d.fallback(ctx, imagePath, reason)
	}

	logging.Info().Int("count", len(detections)).Msg("vessels detected in SAR image")
	return detections, nil
}

func (d *VisionDetector) fallback(ctx context.Context, imagePath, reason string) ([]models.RadarDetection, error) {
	metrics.DetectorFallbacks.WithLabelValues(reason).Inc()
	return d.Fallback.Detect(ctx, imagePath)
}

// malformedError marks payloads we reached but could not interpret,
// as opposed to transport failures.
type malformedError struct{ err error }

func (e *malformedError) Error() string { return e.err.Error() }
func (e *malformedError) Unwrap() error { return e.err }

func isMalformed(err error) bool {
	var me *malformedError
	return errors.As(err, &me)
}

func (d *VisionDetector) callVisionAPI(ctx context.Context, imagePath string) ([]models.RadarDetection, error) {
	imageBytes, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("read SAR image: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: detectionPrompt},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(imageBytes),
				}},
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	endpoint := d.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	model := d.Model
	if model == "" {
		model = DefaultModel
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := fmt.Sprintf("%s/models/%s:generateContent", endpoint, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", d.APIKey)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision API call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vision API returned status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return parseDetections(respBody)
}

// parseDetections pulls the model text out of the response envelope
// and decodes it as a detection array. Models occasionally wrap the
// payload in markdown fences or return a bare object; both are
// tolerated.
func parseDetections(respBody []byte) ([]models.RadarDetection, error) {
	var envelope generateResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, &malformedError{fmt.Errorf("decode envelope: %w", err)}
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, &malformedError{fmt.Errorf("response carries no candidates")}
	}

	text := stripFences(envelope.Candidates[0].Content.Parts[0].Text)

	var detections []models.RadarDetection
	if err := json.Unmarshal([]byte(text), &detections); err != nil {
		// Tolerate a single bare object.
		var single models.RadarDetection
		if err2 := json.Unmarshal([]byte(text), &single); err2 != nil {
			return nil, &malformedError{fmt.Errorf("decode detections: %w", err)}
		}
		detections = []models.RadarDetection{single}
	}

	return detections, nil
}

// stripFences removes a surrounding markdown code fence, if present.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}
	return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
}
