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

package platform

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
)

// HostProvider backs the platform interfaces with gopsutil host data. It has
// no telephony or radio hardware, so those capabilities report ErrUnsupported
// and consumers fall back the same way they would on a locked-down phone.
type HostProvider struct{}

func NewHostProvider() *HostProvider {
	return &HostProvider{}
}

// Telephony

func (*HostProvider) ActiveSubscriptions() ([]Subscription, error) {
	return nil, ErrUnsupported
}

func (*HostProvider) SubscriptionNumber(int) (string, error) {
	return "", ErrUnsupported
}

func (*HostProvider) LineNumber() (string, error) {
	return "", ErrUnsupported
}

func (*HostProvider) SettingsString(string) (string, error) {
	return "", ErrUnsupported
}

func (*HostProvider) DeviceNumber() (string, error) {
	return "", ErrUnsupported
}

// Radio

func (*HostProvider) APILevel() int {
	return 0
}

func (*HostProvider) CellSignals() ([]CellSignal, error) {
	return nil, ErrUnsupported
}

func (*HostProvider) LegacySignalDBm() (int, error) {
	return 0, ErrUnsupported
}

func (*HostProvider) NetworkOperator() (string, string, error) {
	return "", "", ErrUnsupported
}

// Power

// BatteryLevel reports full charge: hosts without a battery are on mains.
func (*HostProvider) BatteryLevel() (int, error) {
	return 100, nil
}

// Info

func (*HostProvider) SecureID() (string, error) {
	info, err := host.Info()
	if err != nil {
		return "", fmt.Errorf("failed to read host info: %w", err)
	}

	return info.HostID, nil
}

func (*HostProvider) Manufacturer() string {
	info, err := host.Info()
	if err != nil {
		return ""
	}

	return info.Platform
}

func (*HostProvider) Model() string {
	info, err := host.Info()
	if err != nil {
		return ""
	}

	return info.KernelArch
}

func (*HostProvider) OSVersion() string {
	info, err := host.Info()
	if err != nil {
		return ""
	}

	return fmt.Sprintf("%s %s", info.OS, info.PlatformVersion)
}

func (*HostProvider) UptimeSeconds() (uint64, error) {
	return host.Uptime()
}
