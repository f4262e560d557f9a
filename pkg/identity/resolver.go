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

// Package identity resolves device identity and SIM profile data from
// multiple unreliable, version-gated platform sources using ordered fallback
// chains. A failing source never aborts a chain; it only moves resolution to
// the next source.
package identity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/smsradar/pkg/logger"
	"github.com/carverauto/smsradar/pkg/models"
	"github.com/carverauto/smsradar/pkg/platform"
)

// SignalReader supplies the per-slot signal status string. Implemented by
// the signal probe; injected so slot resolution stays testable.
type SignalReader interface {
	CurrentSignalStatus() string
}

// Resolver owns the process-lifetime device ID and builds fresh SIM slot and
// phone-number views on every call.
type Resolver struct {
	telephony platform.Telephony
	info      platform.Info
	signal    SignalReader
	logger    logger.Logger

	deviceID string // resolved once in New, immutable afterwards
}

func New(telephony platform.Telephony, info platform.Info, signal SignalReader, log logger.Logger) *Resolver {
	r := &Resolver{
		telephony: telephony,
		info:      info,
		signal:    signal,
		logger:    log,
	}

	r.deviceID = r.resolveDeviceID()

	return r
}

// ResolveDeviceID returns the stable device identifier. It never returns an
// empty string and is constant for the process lifetime.
func (r *Resolver) ResolveDeviceID() string {
	return r.deviceID
}

func (r *Resolver) resolveDeviceID() string {
	id, err := r.info.SecureID()
	if err != nil || id == "" {
		r.logger.Debug().Err(err).Msg("Platform secure ID unavailable, generating random device ID")

		id = uuid.NewString()
	}

	if id == "" {
		id = fmt.Sprintf("device-%d", time.Now().UnixMilli())
	}

	return id
}

// Identity composes the full device identity from the cached device ID, the
// phone-number chain, and static platform info.
func (r *Resolver) Identity() models.DeviceIdentity {
	return models.DeviceIdentity{
		DeviceID:     r.deviceID,
		PhoneNumber:  r.ResolvePrimaryPhoneNumber(),
		Manufacturer: r.info.Manufacturer(),
		Model:        r.info.Model(),
		OSVersion:    r.info.OSVersion(),
	}
}

// ResolveSimSlots enumerates active subscriptions into SimSlotInfo entries.
// A failure reading one subscription is logged and skipped so the remaining
// subscriptions still resolve. The returned list is never empty: when
// nothing is readable, a single synthetic slot is substituted.
func (r *Resolver) ResolveSimSlots() []models.SimSlotInfo {
	subs, err := r.telephony.ActiveSubscriptions()
	if err != nil {
		r.logger.Debug().Err(err).Msg("Subscription enumeration unavailable")

		return []models.SimSlotInfo{models.UnknownSimSlot()}
	}

	slots := make([]models.SimSlotInfo, 0, len(subs))

	for _, sub := range subs {
		slot, err := r.resolveSlot(sub)
		if err != nil {
			r.logger.Warn().Err(err).Int("subscription_id", sub.ID).
				Msg("Failed to resolve subscription, continuing with remaining slots")

			continue
		}

		slots = append(slots, slot)
	}

	if len(slots) == 0 {
		return []models.SimSlotInfo{models.UnknownSimSlot()}
	}

	return slots
}

func (r *Resolver) resolveSlot(sub platform.Subscription) (models.SimSlotInfo, error) {
	number := sub.Number

	if number == "" {
		resolved, err := r.telephony.SubscriptionNumber(sub.ID)
		if err != nil {
			r.logger.Debug().Err(err).Int("subscription_id", sub.ID).
				Msg("Per-subscription number lookup failed")
		} else {
			number = resolved
		}
	}

	if number == "" {
		number = models.UnknownValue
	}

	carrier := sub.CarrierName
	if carrier == "" {
		carrier = models.UnknownValue
	}

	operator := sub.OperatorName
	if operator == "" {
		operator = models.UnknownValue
	}

	return models.SimSlotInfo{
		SlotIndex:    sub.SlotIndex,
		CarrierName:  carrier,
		PhoneNumber:  number,
		OperatorName: operator,
		SignalStatus: r.signal.CurrentSignalStatus(),
	}, nil
}
