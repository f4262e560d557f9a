/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package telemetry delivers discrete device events (registration, SMS
// relay, heartbeat) to the collector over HTTPS. Each operation issues
// exactly one request and maps the outcome to a DeliveryResult; no retries
// happen here.
package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carverauto/smsradar/pkg/logger"
	"github.com/carverauto/smsradar/pkg/models"
)

const (
	registerEndpoint  = "/api/device/register"
	smsEndpoint       = "/api/sms/receive"
	heartbeatEndpoint = "/api/device/heartbeat"

	defaultRequestTimeout = 30 * time.Second
)

// Config holds the collector connection settings.
type Config struct {
	// BaseURL is the collector base URL, e.g. "https://collector.example.com".
	BaseURL string `json:"base_url"`

	// RequestTimeout caps connect+read+write of a single request.
	RequestTimeout models.Duration `json:"request_timeout,omitempty"`
}

// Client is the shared telemetry client. It is constructed once at startup
// and safe for concurrent use; every call builds its own payload.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(config *Config, log logger.Logger) *Client {
	timeout := time.Duration(config.RequestTimeout)
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log,
	}
}

// Register announces the device to the collector.
func (c *Client) Register(ctx context.Context, profile *models.DeviceProfile) DeliveryResult {
	var resp models.RegisterResponse

	result := c.post(ctx, registerEndpoint, profile, &resp)
	if result.Status != DeliveryOK {
		return result
	}

	if !resp.Success {
		return resultServerRejected(resp.Message)
	}

	c.logger.Info().Str("device_id", profile.DeviceID).Msg("Device registered")

	return resultOK()
}

// ForwardSms relays one inbound SMS event. At-most-once: the caller logs the
// result and never queues or retries.
func (c *Client) ForwardSms(ctx context.Context, event *models.SmsEvent) DeliveryResult {
	var resp models.SmsReceiveResponse

	result := c.post(ctx, smsEndpoint, event, &resp)
	if result.Status != DeliveryOK {
		return result
	}

	if !resp.Success {
		return resultServerRejected(resp.Message)
	}

	c.logger.Debug().Str("message_id", resp.MessageID).Str("sender", event.Sender).
		Msg("SMS forwarded")

	return resultOK()
}

// Heartbeat reports device health. A server-suggested next interval, when
// present, is surfaced on the result for the scheduler to adopt.
func (c *Client) Heartbeat(ctx context.Context, event *models.HeartbeatEvent) DeliveryResult {
	var resp models.HeartbeatResponse

	result := c.post(ctx, heartbeatEndpoint, event, &resp)
	if result.Status != DeliveryOK {
		return result
	}

	if !resp.Success {
		return resultServerRejected(resp.Message)
	}

	ok := resultOK()
	if resp.NextHeartbeatInterval > 0 {
		ok.NextInterval = time.Duration(resp.NextHeartbeatInterval) * time.Second
	}

	return ok
}

// post serializes payload, issues one POST, and decodes the response into
// out. Transport failures, timeouts and non-2xx statuses all map to
// DeliveryNetworkFailure; a malformed response body maps to DeliveryUnknown.
func (c *Client) post(ctx context.Context, endpoint string, payload, out interface{}) DeliveryResult {
	body, err := json.Marshal(payload)
	if err != nil {
		return resultUnknown(fmt.Errorf("failed to marshal payload: %w", err))
	}

	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return resultUnknown(fmt.Errorf("failed to build request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Request failed")

		return resultNetworkFailure(err)
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn().Int("status_code", resp.StatusCode).Str("endpoint", endpoint).
			Msg("Collector returned non-2xx status")

		return resultNetworkFailure(fmt.Errorf("%w: %d", errUnexpectedStatusCode, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resultUnknown(fmt.Errorf("failed to decode response: %w", err))
	}

	return resultOK()
}
