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

// Package platform defines the interfaces behind which the hosting OS hides.
// On a phone these are implemented by the telephony/radio collaborators; the
// host implementation in this package backs development and CI deployments.
// Implementations signal missing capabilities with ErrUnsupported and denied
// access with ErrPermissionDenied; callers degrade rather than abort.
package platform

// Subscription is the OS-level handle for one active SIM profile. It is
// distinct from the physical slot: SlotIndex is the tray position, ID is the
// platform's subscription identifier.
type Subscription struct {
	ID           int
	SlotIndex    int
	CarrierName  string
	Number       string // populated only on platform versions that expose it
	OperatorName string
}

// Telephony exposes the subscription and phone-number surface of the OS.
type Telephony interface {
	// ActiveSubscriptions enumerates all active SIM subscriptions.
	ActiveSubscriptions() ([]Subscription, error)

	// SubscriptionNumber looks up the phone number for one subscription ID.
	SubscriptionNumber(subscriptionID int) (string, error)

	// LineNumber returns the device-level primary line number (legacy API).
	LineNumber() (string, error)

	// SettingsString reads a system settings string key.
	SettingsString(key string) (string, error)

	// DeviceNumber is the generic device-utility number lookup.
	DeviceNumber() (string, error)
}

// CellSignal is one measured cell from the modern signal-strength list API.
type CellSignal struct {
	NetworkType string // "LTE", "NR", "WCDMA", "GSM", "CDMA"
	DBm         int
}

// Radio exposes the signal-measurement surface of the OS. Which method is
// usable depends on APILevel; the signal probe dispatches accordingly.
type Radio interface {
	APILevel() int

	// CellSignals returns the modern per-cell measurement list.
	CellSignals() ([]CellSignal, error)

	// LegacySignalDBm returns the single-value legacy measurement.
	LegacySignalDBm() (int, error)

	// NetworkOperator returns the network type and operator name, the only
	// data available on the oldest platforms.
	NetworkOperator() (networkType, operator string, err error)
}

// Power reports battery state.
type Power interface {
	// BatteryLevel returns the charge percentage in [0, 100].
	BatteryLevel() (int, error)
}

// Info exposes static device identity data.
type Info interface {
	// SecureID returns the platform's stable install-scoped identifier.
	SecureID() (string, error)

	Manufacturer() string
	Model() string
	OSVersion() string

	// UptimeSeconds reports how long the device has been up.
	UptimeSeconds() (uint64, error)
}
