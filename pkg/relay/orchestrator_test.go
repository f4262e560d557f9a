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

package relay

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/smsradar/pkg/heartbeat"
	"github.com/carverauto/smsradar/pkg/identity"
	"github.com/carverauto/smsradar/pkg/logger"
	"github.com/carverauto/smsradar/pkg/models"
	"github.com/carverauto/smsradar/pkg/platform"
	"github.com/carverauto/smsradar/pkg/signal"
	"github.com/carverauto/smsradar/pkg/telemetry"
)

// fakePlatform implements the platform surfaces with fixed, healthy values.
type fakePlatform struct {
	batteryErr error
}

func (*fakePlatform) ActiveSubscriptions() ([]platform.Subscription, error) {
	return []platform.Subscription{
		{ID: 1, SlotIndex: 0, CarrierName: "Acme Mobile", Number: "+19998887777", OperatorName: "acmemob"},
	}, nil
}

func (*fakePlatform) SubscriptionNumber(int) (string, error) {
	return "+19998887777", nil
}

func (*fakePlatform) LineNumber() (string, error) {
	return "", platform.ErrUnsupported
}

func (*fakePlatform) SettingsString(string) (string, error) {
	return "", platform.ErrUnsupported
}

func (*fakePlatform) DeviceNumber() (string, error) {
	return "", platform.ErrUnsupported
}

func (*fakePlatform) APILevel() int {
	return 31
}

func (*fakePlatform) CellSignals() ([]platform.CellSignal, error) {
	return []platform.CellSignal{{NetworkType: "LTE", DBm: -60}}, nil
}

func (*fakePlatform) LegacySignalDBm() (int, error) {
	return 0, platform.ErrUnsupported
}

func (*fakePlatform) NetworkOperator() (string, string, error) {
	return "", "", platform.ErrUnsupported
}

func (f *fakePlatform) BatteryLevel() (int, error) {
	if f.batteryErr != nil {
		return 0, f.batteryErr
	}

	return 87, nil
}

func (*fakePlatform) SecureID() (string, error) {
	return "android-secure-1", nil
}

func (*fakePlatform) Manufacturer() string {
	return "Acme"
}

func (*fakePlatform) Model() string {
	return "Widget 9"
}

func (*fakePlatform) OSVersion() string {
	return "Android 14"
}

func (*fakePlatform) UptimeSeconds() (uint64, error) {
	return 3600, nil
}

// fakeTelemetry records delivered payloads and replays configured results.
type fakeTelemetry struct {
	mu sync.Mutex

	registerResult  telemetry.DeliveryResult
	forwardResult   telemetry.DeliveryResult
	heartbeatResult telemetry.DeliveryResult

	registered []models.DeviceProfile
	forwarded  []models.SmsEvent
	heartbeats int
}

func newFakeTelemetry() *fakeTelemetry {
	ok := telemetry.DeliveryResult{Status: telemetry.DeliveryOK}

	return &fakeTelemetry{
		registerResult:  ok,
		forwardResult:   ok,
		heartbeatResult: ok,
	}
}

func (f *fakeTelemetry) Register(_ context.Context, profile *models.DeviceProfile) telemetry.DeliveryResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.registered = append(f.registered, *profile)

	return f.registerResult
}

func (f *fakeTelemetry) ForwardSms(_ context.Context, event *models.SmsEvent) telemetry.DeliveryResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.forwarded = append(f.forwarded, *event)

	return f.forwardResult
}

func (f *fakeTelemetry) Heartbeat(_ context.Context, _ *models.HeartbeatEvent) telemetry.DeliveryResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.heartbeats++

	return f.heartbeatResult
}

func (f *fakeTelemetry) registerCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.registered)
}

func (f *fakeTelemetry) lastForwarded(t *testing.T) models.SmsEvent {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.forwarded)

	return f.forwarded[len(f.forwarded)-1]
}

// blockingClock hands out timers that never fire, pinning the heartbeat loop
// after its first immediate tick.
type blockingClock struct{}

func (blockingClock) Now() time.Time {
	return time.Now()
}

func (blockingClock) Timer(time.Duration) heartbeat.Timer {
	return blockedTimer{ch: make(chan time.Time)}
}

type blockedTimer struct {
	ch chan time.Time
}

func (t blockedTimer) Chan() <-chan time.Time {
	return t.ch
}

func (blockedTimer) Stop() {}

func newTestOrchestrator(client TelemetryClient, plat *fakePlatform) *Orchestrator {
	log := logger.NewTestLogger()
	probe := signal.NewProbe(plat, log)
	resolver := identity.New(plat, plat, probe, log)

	return New(resolver, probe, plat, plat, client, &heartbeat.Config{}, blockingClock{}, log)
}

func TestOnStart_RegistersAndStartsHeartbeat(t *testing.T) {
	client := newFakeTelemetry()
	o := newTestOrchestrator(client, &fakePlatform{})

	result := o.OnStart(context.Background())

	defer o.OnStop()

	require.True(t, result.Ok())
	require.Equal(t, 1, client.registerCalls())

	profile := client.registered[0]
	assert.Equal(t, "android-secure-1", profile.DeviceID)
	assert.Equal(t, "+19998887777", profile.PhoneNumber)
	assert.Equal(t, models.DeviceStatusOnline, profile.DeviceStatus)
	assert.Equal(t, "Acme Widget 9 (Android 14)", profile.DeviceBrandInfo)
	assert.Equal(t, 87, profile.BatteryLevel)

	require.Len(t, profile.SimSlots, 1)
	assert.Equal(t, "Acme Mobile", profile.SimSlots[0].CarrierName)
	assert.Equal(t, "Level 3 (-60 dBm) - Excellent", profile.SimSlots[0].SignalStatus)

	status := o.Status()
	assert.True(t, status.Registered)
	assert.True(t, status.HeartbeatActive)
}

func TestOnStart_RegistrationFailureLeavesHeartbeatStopped(t *testing.T) {
	client := newFakeTelemetry()
	client.registerResult = telemetry.DeliveryResult{
		Status:  telemetry.DeliveryServerRejected,
		Message: "unknown device",
	}

	o := newTestOrchestrator(client, &fakePlatform{})

	result := o.OnStart(context.Background())

	assert.Equal(t, telemetry.DeliveryServerRejected, result.Status)

	status := o.Status()
	assert.False(t, status.Registered)
	assert.False(t, status.HeartbeatActive)

	// The next start trigger attempts registration again.
	o.OnStart(context.Background())
	assert.Equal(t, 2, client.registerCalls())
}

func TestOnStart_AlreadyRegisteredDoesNotReRegister(t *testing.T) {
	client := newFakeTelemetry()
	o := newTestOrchestrator(client, &fakePlatform{})

	defer o.OnStop()

	require.True(t, o.OnStart(context.Background()).Ok())

	result := o.OnStart(context.Background())

	assert.True(t, result.Ok())
	assert.Equal(t, 1, client.registerCalls())
	assert.True(t, o.Status().HeartbeatActive)
}

func TestOnSmsReceived_ForwardsWithMetadata(t *testing.T) {
	client := newFakeTelemetry()
	o := newTestOrchestrator(client, &fakePlatform{})

	subID := 1
	slot := 0

	result := o.OnSmsReceived(context.Background(), "+15551234567", "hello", &SmsOptions{
		SubscriptionID: &subID,
		SlotIndex:      &slot,
	})

	require.True(t, result.Ok())

	event := client.lastForwarded(t)
	assert.Equal(t, "android-secure-1", event.DeviceID)
	assert.Equal(t, "+15551234567", event.Sender)
	assert.Equal(t, "hello", event.Message)
	assert.Equal(t, "+19998887777", event.Recipient)
	assert.Equal(t, "Android 14", event.AndroidVersion)
	assert.Equal(t, "Acme", event.Manufacturer)
	assert.Equal(t, "Widget 9", event.Model)
	assert.Positive(t, event.Timestamp)

	require.NotNil(t, event.SubscriptionID)
	assert.Equal(t, 1, *event.SubscriptionID)
	require.NotNil(t, event.SlotIndex)
	assert.Equal(t, 0, *event.SlotIndex)

	assert.Equal(t, int64(1), o.Status().MessageCount)
}

func TestOnSmsReceived_ExplicitReceivingNumberWins(t *testing.T) {
	client := newFakeTelemetry()
	o := newTestOrchestrator(client, &fakePlatform{})

	o.OnSmsReceived(context.Background(), "+15551234567", "hello", &SmsOptions{
		ReceivingNumber: "+15550009999",
	})

	assert.Equal(t, "+15550009999", client.lastForwarded(t).Recipient)
}

func TestOnSmsReceived_FailureStillCountsMessage(t *testing.T) {
	client := newFakeTelemetry()
	client.forwardResult = telemetry.DeliveryResult{
		Status:  telemetry.DeliveryNetworkFailure,
		Message: "connection refused",
	}

	o := newTestOrchestrator(client, &fakePlatform{})

	result := o.OnSmsReceived(context.Background(), "+15551234567", "hello", nil)

	assert.Equal(t, telemetry.DeliveryNetworkFailure, result.Status)
	assert.Equal(t, int64(1), o.Status().MessageCount)
}

func TestStatus_ReportsDeviceUptime(t *testing.T) {
	o := newTestOrchestrator(newFakeTelemetry(), &fakePlatform{})

	status := o.Status()

	assert.Equal(t, uint64(3600), status.DeviceUptimeSeconds)
	assert.Zero(t, status.MessageCount)
	assert.False(t, status.Registered)
}

func TestBuildHeartbeatEvent_BatteryErrorDegradesToZero(t *testing.T) {
	o := newTestOrchestrator(newFakeTelemetry(), &fakePlatform{batteryErr: platform.ErrUnsupported})

	event := o.BuildHeartbeatEvent(context.Background())

	assert.Equal(t, "android-secure-1", event.DeviceID)
	assert.Zero(t, event.BatteryLevel)
	assert.Equal(t, "Acme Widget 9 (Android 14)", event.DeviceBrandInfo)
	require.Len(t, event.SimSlots, 1)
}

func TestLifecycleStart_SwallowsRegistrationFailure(t *testing.T) {
	client := newFakeTelemetry()
	client.registerResult = telemetry.DeliveryResult{
		Status:  telemetry.DeliveryNetworkFailure,
		Message: "connection refused",
	}

	o := newTestOrchestrator(client, &fakePlatform{})

	require.NoError(t, o.Start(context.Background()))
	assert.False(t, o.Status().Registered)

	require.NoError(t, o.Stop(context.Background()))
}
