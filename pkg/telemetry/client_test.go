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

package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/smsradar/pkg/logger"
	"github.com/carverauto/smsradar/pkg/models"
)

func newTestClient(baseURL string, timeout time.Duration) *Client {
	return NewClient(&Config{
		BaseURL:        baseURL,
		RequestTimeout: models.Duration(timeout),
	}, logger.NewTestLogger())
}

func testProfile() *models.DeviceProfile {
	return &models.DeviceProfile{
		DeviceID:        "device-1",
		PhoneNumber:     "+15551234567",
		SimSlots:        []models.SimSlotInfo{models.UnknownSimSlot()},
		BatteryLevel:    87,
		DeviceStatus:    models.DeviceStatusOnline,
		DeviceBrandInfo: "Acme Widget 9 (Android 14)",
	}
}

func TestRegister_Success(t *testing.T) {
	var received models.DeviceProfile

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/device/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		_ = json.NewEncoder(w).Encode(models.RegisterResponse{Success: true, DeviceID: "device-1"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)

	result := client.Register(context.Background(), testProfile())

	assert.True(t, result.Ok())
	assert.Equal(t, "device-1", received.DeviceID)
	assert.Equal(t, 87, received.BatteryLevel)
	assert.Equal(t, models.DeviceStatusOnline, received.DeviceStatus)
}

func TestRegister_ServerRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(models.RegisterResponse{Success: false, Message: "device quota exceeded"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)

	result := client.Register(context.Background(), testProfile())

	assert.Equal(t, DeliveryServerRejected, result.Status)
	assert.Equal(t, "device quota exceeded", result.Message)
}

func TestForwardSms_OutcomeMapping(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		expected DeliveryStatus
	}{
		{
			name: "accepted",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(models.SmsReceiveResponse{Success: true, MessageID: "m-1"})
			},
			expected: DeliveryOK,
		},
		{
			name: "rejected",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(models.SmsReceiveResponse{Success: false, Message: "X"})
			},
			expected: DeliveryServerRejected,
		},
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expected: DeliveryNetworkFailure,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			expected: DeliveryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(server.URL, time.Second)

			result := client.ForwardSms(context.Background(), &models.SmsEvent{
				DeviceID:  "device-1",
				Sender:    "+15557654321",
				Message:   "hello",
				Timestamp: time.Now().UnixMilli(),
				Recipient: "+15551234567",
			})

			assert.Equal(t, tt.expected, result.Status)
		})
	}
}

func TestForwardSms_RejectedCarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(models.SmsReceiveResponse{Success: false, Message: "X"})
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)

	result := client.ForwardSms(context.Background(), &models.SmsEvent{Sender: "+15557654321"})

	assert.Equal(t, DeliveryServerRejected, result.Status)
	assert.Equal(t, "X", result.Message)
}

func TestHeartbeat_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(models.HeartbeatResponse{Success: true})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 50*time.Millisecond)

	result := client.Heartbeat(context.Background(), &models.HeartbeatEvent{DeviceID: "device-1"})

	assert.Equal(t, DeliveryNetworkFailure, result.Status)
}

func TestHeartbeat_ConnectionRefused(t *testing.T) {
	// Reserve a port, then close it so nothing listens there.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := newTestClient(url, time.Second)

	result := client.Heartbeat(context.Background(), &models.HeartbeatEvent{DeviceID: "device-1"})

	assert.Equal(t, DeliveryNetworkFailure, result.Status)
}

func TestHeartbeat_SurfacesNextInterval(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/device/heartbeat", r.URL.Path)

		_ = json.NewEncoder(w).Encode(models.HeartbeatResponse{Success: true, NextHeartbeatInterval: 90})
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)

	result := client.Heartbeat(context.Background(), &models.HeartbeatEvent{DeviceID: "device-1"})

	require.True(t, result.Ok())
	assert.Equal(t, 90*time.Second, result.NextInterval)
}

func TestClient_CanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(models.HeartbeatResponse{Success: true})
	}))
	defer server.Close()

	client := newTestClient(server.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := client.Heartbeat(ctx, &models.HeartbeatEvent{DeviceID: "device-1"})

	assert.Equal(t, DeliveryNetworkFailure, result.Status)
}
