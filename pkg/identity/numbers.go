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

package identity

import "github.com/carverauto/smsradar/pkg/models"

// settingsKeyLine1Number is the system settings key consulted by the
// settings-based number source. Only some platform versions populate it.
const settingsKeyLine1Number = "line1_number"

// numberSource is one step of the phone-number fallback chain: a named
// lookup that may return an empty value or fail without consequence for the
// rest of the chain.
type numberSource struct {
	name    string
	resolve func(r *Resolver) (string, error)
}

// numberSources is the ordered chain; the first non-empty result wins.
var numberSources = []numberSource{
	{name: "subscription_record", resolve: (*Resolver).numberFromSubscriptionRecord},
	{name: "subscription_service", resolve: (*Resolver).numberFromSubscriptionService},
	{name: "line_number", resolve: (*Resolver).numberFromLineNumber},
	{name: "system_settings", resolve: (*Resolver).numberFromSettings},
	{name: "device_utility", resolve: (*Resolver).numberFromDeviceUtility},
	{name: "carrier_pattern", resolve: (*Resolver).numberFromCarrierPattern},
}

// ResolvePrimaryPhoneNumber walks the source chain in priority order and
// returns the first non-empty number. Sources that fail are logged and
// skipped. When every source comes up empty the result is "Unknown"; this
// method never fails.
func (r *Resolver) ResolvePrimaryPhoneNumber() string {
	for _, source := range numberSources {
		number, err := source.resolve(r)
		if err != nil {
			r.logger.Debug().Err(err).Str("source", source.name).
				Msg("Phone number source unavailable")

			continue
		}

		if number != "" {
			r.logger.Debug().Str("source", source.name).
				Msg("Phone number resolved")

			return number
		}
	}

	return models.UnknownValue
}

// Step 1: the number field on the active subscription record itself, exposed
// only on newer platform versions.
func (r *Resolver) numberFromSubscriptionRecord() (string, error) {
	subs, err := r.telephony.ActiveSubscriptions()
	if err != nil {
		return "", err
	}

	for _, sub := range subs {
		if sub.Number != "" {
			return sub.Number, nil
		}
	}

	return "", nil
}

// Step 2: the subscription-service lookup keyed by subscription ID.
func (r *Resolver) numberFromSubscriptionService() (string, error) {
	subs, err := r.telephony.ActiveSubscriptions()
	if err != nil {
		return "", err
	}

	for _, sub := range subs {
		number, err := r.telephony.SubscriptionNumber(sub.ID)
		if err != nil {
			r.logger.Debug().Err(err).Int("subscription_id", sub.ID).
				Msg("Subscription number lookup failed, trying next subscription")

			continue
		}

		if number != "" {
			return number, nil
		}
	}

	return "", nil
}

// Step 3: the device-level primary line number (legacy API).
func (r *Resolver) numberFromLineNumber() (string, error) {
	return r.telephony.LineNumber()
}

// Step 4: the system settings string key, populated on some builds.
func (r *Resolver) numberFromSettings() (string, error) {
	return r.telephony.SettingsString(settingsKeyLine1Number)
}

// Step 5: the generic device-utility fallback.
func (r *Resolver) numberFromDeviceUtility() (string, error) {
	return r.telephony.DeviceNumber()
}

// Step 6: carrier-specific pattern matching. Intentionally unimplemented;
// it always yields an empty value so resolution falls through to "Unknown".
func (*Resolver) numberFromCarrierPattern() (string, error) {
	return "", nil
}
