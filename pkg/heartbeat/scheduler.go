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

// Package heartbeat runs the periodic device health report loop. The
// scheduler is cancel-only (Stopped -> Running -> Stopped, no pause) and
// keeps all of its state in memory for its own lifetime.
package heartbeat

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/carverauto/smsradar/pkg/logger"
	"github.com/carverauto/smsradar/pkg/models"
	"github.com/carverauto/smsradar/pkg/telemetry"
)

const (
	defaultInterval = 60 * time.Second
	defaultPenalty  = 60 * time.Second

	// failureThreshold is the consecutive-failure count at which the next
	// sleep is extended by the penalty.
	failureThreshold = 3
)

// Sender delivers one heartbeat event. Satisfied by telemetry.Client.
type Sender interface {
	Heartbeat(ctx context.Context, event *models.HeartbeatEvent) telemetry.DeliveryResult
}

// EventBuilder produces a fresh heartbeat payload for each tick.
type EventBuilder func(ctx context.Context) *models.HeartbeatEvent

// Config holds the scheduler cadence settings.
type Config struct {
	// Interval is the base heartbeat cadence. Defaults to 60s.
	Interval models.Duration `json:"interval,omitempty"`

	// FailurePenalty is added to the base interval while a failure streak
	// is at or past the threshold. Defaults to 60s. The penalty is a fixed
	// addition, never compounded.
	FailurePenalty models.Duration `json:"failure_penalty,omitempty"`
}

// Scheduler drives the heartbeat loop. Its only mutable state is the
// running flag and the consecutive-failure counter.
type Scheduler struct {
	sender   Sender
	build    EventBuilder
	interval time.Duration
	penalty  time.Duration
	clock    Clock
	logger   logger.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc

	failures atomic.Int32
}

// New creates a scheduler. A nil clock defaults to the real clock.
func New(sender Sender, build EventBuilder, config *Config, clock Clock, log logger.Logger) *Scheduler {
	interval := time.Duration(config.Interval)
	if interval <= 0 {
		interval = defaultInterval
	}

	penalty := time.Duration(config.FailurePenalty)
	if penalty <= 0 {
		penalty = defaultPenalty
	}

	if clock == nil {
		clock = realClock{}
	}

	return &Scheduler{
		sender:   sender,
		build:    build,
		interval: interval,
		penalty:  penalty,
		clock:    clock,
		logger:   log,
	}
}

// Start transitions the scheduler to Running and launches the tick loop.
// Starting an already-running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Debug().Msg("Heartbeat scheduler already running")

		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true
	s.failures.Store(0)

	s.logger.Info().Dur("interval", s.interval).Msg("Starting heartbeat scheduler")

	go s.run(ctx)
}

// Stop cancels the loop. An in-flight heartbeat request is abandoned, not
// awaited; its result is discarded when the context is done.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.cancel = nil
	s.running = false

	s.logger.Info().Msg("Heartbeat scheduler stopped")
}

// IsRunning reports whether the loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// ConsecutiveFailures returns the current failure streak length.
func (s *Scheduler) ConsecutiveFailures() int {
	return int(s.failures.Load())
}

func (s *Scheduler) run(ctx context.Context) {
	base := s.interval

	for {
		result := s.tick(ctx)

		if ctx.Err() != nil {
			return
		}

		if result.Ok() {
			s.failures.Store(0)

			if result.NextInterval > 0 && result.NextInterval != base {
				s.logger.Info().Dur("interval", result.NextInterval).
					Msg("Adopting server-suggested heartbeat interval")

				base = result.NextInterval
			}
		} else {
			streak := s.failures.Add(1)
			s.logger.Warn().Int32("consecutive_failures", streak).
				Str("status", result.Status.String()).
				Str("message", result.Message).
				Msg("Heartbeat delivery failed")
		}

		delay := base
		if s.failures.Load() >= failureThreshold {
			delay = base + s.penalty
			s.logger.Warn().Dur("delay", delay).
				Msg("Failure streak at threshold, extending next heartbeat delay")
		}

		timer := s.clock.Timer(delay)

		select {
		case <-ctx.Done():
			timer.Stop()

			return
		case <-timer.Chan():
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) telemetry.DeliveryResult {
	event := s.build(ctx)

	result := s.sender.Heartbeat(ctx, event)
	if result.Ok() {
		s.logger.Debug().Str("device_id", event.DeviceID).Msg("Heartbeat delivered")
	}

	return result
}
