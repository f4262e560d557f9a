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

// Package relay is the event-driven entry point of the agent: it sequences
// identity resolution, registration, SMS forwarding and the heartbeat loop.
// Every SMS-triggered relay operates on its own payload; results are logged,
// never queued or retried.
package relay

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/smsradar/pkg/heartbeat"
	"github.com/carverauto/smsradar/pkg/identity"
	"github.com/carverauto/smsradar/pkg/logger"
	"github.com/carverauto/smsradar/pkg/models"
	"github.com/carverauto/smsradar/pkg/platform"
	"github.com/carverauto/smsradar/pkg/signal"
	"github.com/carverauto/smsradar/pkg/telemetry"
)

// TelemetryClient is the delivery surface the orchestrator depends on.
// Satisfied by telemetry.Client.
type TelemetryClient interface {
	Register(ctx context.Context, profile *models.DeviceProfile) telemetry.DeliveryResult
	ForwardSms(ctx context.Context, event *models.SmsEvent) telemetry.DeliveryResult
	Heartbeat(ctx context.Context, event *models.HeartbeatEvent) telemetry.DeliveryResult
}

// SmsOptions carries the optional per-message context supplied by the SMS
// collaborator.
type SmsOptions struct {
	SubscriptionID *int
	SlotIndex      *int

	// ReceivingNumber is the per-SIM number the message arrived on; when the
	// OS does not supply one, the event's recipient falls back to the
	// resolved primary phone number.
	ReceivingNumber string
}

// Status is the display-only counter snapshot consumed by the UI
// collaborator.
type Status struct {
	MessageCount        int64         `json:"messageCount"`
	Uptime              time.Duration `json:"uptime"`
	DeviceUptimeSeconds uint64        `json:"deviceUptimeSeconds"`
	Registered          bool          `json:"registered"`
	HeartbeatActive     bool          `json:"heartbeatActive"`
	ConsecutiveFailures int           `json:"consecutiveFailures"`
}

// Orchestrator receives the external start/stop and SMS triggers. Entry
// points are independent and safe to invoke concurrently; the heartbeat loop
// is gated on successful registration.
type Orchestrator struct {
	resolver  *identity.Resolver
	probe     *signal.Probe
	power     platform.Power
	info      platform.Info
	telemetry TelemetryClient
	scheduler *heartbeat.Scheduler
	logger    logger.Logger

	mu         sync.Mutex
	registered bool
	startedAt  time.Time

	messageCount atomic.Int64
}

// New wires the orchestrator and its heartbeat scheduler. A nil clock means
// real time.
func New(
	resolver *identity.Resolver,
	probe *signal.Probe,
	power platform.Power,
	info platform.Info,
	client TelemetryClient,
	heartbeatConfig *heartbeat.Config,
	clock heartbeat.Clock,
	log logger.Logger,
) *Orchestrator {
	o := &Orchestrator{
		resolver:  resolver,
		probe:     probe,
		power:     power,
		info:      info,
		telemetry: client,
		logger:    log,
		startedAt: time.Now(),
	}

	o.scheduler = heartbeat.New(client, o.BuildHeartbeatEvent, heartbeatConfig, clock, log)

	return o
}

// OnStart registers the device and, on success, starts the heartbeat loop.
// Registration failure is logged and left alone: no automatic retry, no
// heartbeat, and the orchestrator stays resident for the next start trigger.
func (o *Orchestrator) OnStart(ctx context.Context) telemetry.DeliveryResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.registered {
		o.logger.Debug().Msg("Already registered, ensuring heartbeat loop is running")
		o.scheduler.Start()

		return telemetry.DeliveryResult{Status: telemetry.DeliveryOK}
	}

	profile := o.BuildDeviceProfile(ctx)

	result := o.telemetry.Register(ctx, profile)
	if !result.Ok() {
		o.logger.Error().Str("status", result.Status.String()).
			Str("message", result.Message).
			Msg("Registration failed, heartbeat loop not started")

		return result
	}

	o.registered = true
	o.scheduler.Start()

	return result
}

// OnSmsReceived relays one logically-complete (reassembled) inbound message.
// Fire-and-log: the result is returned for observation but never retried or
// queued, and distinct messages may complete out of order.
func (o *Orchestrator) OnSmsReceived(ctx context.Context, sender, body string, opts *SmsOptions) telemetry.DeliveryResult {
	o.messageCount.Add(1)

	event := o.buildSmsEvent(sender, body, opts)

	result := o.telemetry.ForwardSms(ctx, event)
	if result.Ok() {
		o.logger.Info().Str("sender", sender).Msg("SMS relayed")
	} else {
		o.logger.Error().Str("sender", sender).
			Str("status", result.Status.String()).
			Str("message", result.Message).
			Msg("SMS relay failed, message dropped")
	}

	return result
}

// OnStop cancels the heartbeat loop and abandons in-flight work. No cleanup
// handshake with the collector is performed.
func (o *Orchestrator) OnStop() {
	o.scheduler.Stop()
}

// Start implements the lifecycle.Service interface. A failed registration is
// not fatal: the agent stays resident awaiting the next start trigger.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.OnStart(ctx)

	return nil
}

// Stop implements the lifecycle.Service interface.
func (o *Orchestrator) Stop(_ context.Context) error {
	o.OnStop()

	return nil
}

// Status snapshots the display counters.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	registered := o.registered
	startedAt := o.startedAt
	o.mu.Unlock()

	deviceUptime, err := o.info.UptimeSeconds()
	if err != nil {
		o.logger.Debug().Err(err).Msg("Device uptime unavailable")

		deviceUptime = 0
	}

	return Status{
		MessageCount:        o.messageCount.Load(),
		Uptime:              time.Since(startedAt),
		DeviceUptimeSeconds: deviceUptime,
		Registered:          registered,
		HeartbeatActive:     o.scheduler.IsRunning(),
		ConsecutiveFailures: o.scheduler.ConsecutiveFailures(),
	}
}

// BuildDeviceProfile composes the registration payload from fresh identity
// and signal data. Nothing is cached between calls except the device ID.
func (o *Orchestrator) BuildDeviceProfile(_ context.Context) *models.DeviceProfile {
	ident := o.resolver.Identity()

	return &models.DeviceProfile{
		DeviceID:        ident.DeviceID,
		PhoneNumber:     ident.PhoneNumber,
		SimSlots:        o.resolver.ResolveSimSlots(),
		BatteryLevel:    o.batteryLevel(),
		DeviceStatus:    models.DeviceStatusOnline,
		DeviceBrandInfo: ident.BrandInfo(),
	}
}

// BuildHeartbeatEvent is the scheduler's per-tick payload builder.
func (o *Orchestrator) BuildHeartbeatEvent(_ context.Context) *models.HeartbeatEvent {
	ident := o.resolver.Identity()

	return &models.HeartbeatEvent{
		DeviceID:        ident.DeviceID,
		BatteryLevel:    o.batteryLevel(),
		SimSlots:        o.resolver.ResolveSimSlots(),
		DeviceBrandInfo: ident.BrandInfo(),
	}
}

func (o *Orchestrator) buildSmsEvent(sender, body string, opts *SmsOptions) *models.SmsEvent {
	if opts == nil {
		opts = &SmsOptions{}
	}

	recipient := opts.ReceivingNumber
	if recipient == "" {
		recipient = o.resolver.ResolvePrimaryPhoneNumber()
	}

	return &models.SmsEvent{
		DeviceID:       o.resolver.ResolveDeviceID(),
		Sender:         sender,
		Message:        body,
		Timestamp:      time.Now().UnixMilli(),
		Recipient:      recipient,
		SlotIndex:      opts.SlotIndex,
		SubscriptionID: opts.SubscriptionID,
		AndroidVersion: o.info.OSVersion(),
		Manufacturer:   o.info.Manufacturer(),
		Model:          o.info.Model(),
	}
}

func (o *Orchestrator) batteryLevel() int {
	level, err := o.power.BatteryLevel()
	if err != nil {
		o.logger.Debug().Err(err).Msg("Battery level unavailable")

		return 0
	}

	return level
}
