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

// Package models defines the data and wire types exchanged with the
// collector. Nothing here is ever written to durable storage; every value is
// either process-lifetime (the cached device ID) or scoped to a single call.
package models

import "fmt"

// UnknownValue is substituted wherever the platform cannot supply a real
// value, so downstream consumers never see an empty field.
const UnknownValue = "Unknown"

// DeviceStatus reports the device's availability to the collector.
type DeviceStatus string

const DeviceStatusOnline DeviceStatus = "online"

// DeviceIdentity holds the stable identity of the device this agent runs on.
// DeviceID is resolved once per process and treated as immutable afterwards.
type DeviceIdentity struct {
	DeviceID     string `json:"deviceId"`
	PhoneNumber  string `json:"phoneNumber"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	OSVersion    string `json:"osVersion"`
}

// BrandInfo renders the manufacturer/model/OS label sent with registration
// and heartbeat payloads.
func (d *DeviceIdentity) BrandInfo() string {
	return fmt.Sprintf("%s %s (%s)", d.Manufacturer, d.Model, d.OSVersion)
}

// SimSlotInfo describes one active subscription. A synthetic slot with
// UnknownValue fields is substituted when no subscriptions are readable, so
// slot lists are never empty.
type SimSlotInfo struct {
	SlotIndex    int    `json:"slotIndex"`
	CarrierName  string `json:"carrierName"`
	PhoneNumber  string `json:"phoneNumber"`
	OperatorName string `json:"operatorName"`
	SignalStatus string `json:"signalStatus"`
}

// UnknownSimSlot returns the placeholder slot used when subscription
// enumeration yields nothing.
func UnknownSimSlot() SimSlotInfo {
	return SimSlotInfo{
		SlotIndex:    0,
		CarrierName:  UnknownValue,
		PhoneNumber:  UnknownValue,
		OperatorName: UnknownValue,
		SignalStatus: UnknownValue,
	}
}

// DeviceProfile is the registration payload. It is composed fresh at call
// time and discarded after delivery.
type DeviceProfile struct {
	DeviceID        string        `json:"deviceId"`
	PhoneNumber     string        `json:"phoneNumber"`
	SimSlots        []SimSlotInfo `json:"simSlots"`
	BatteryLevel    int           `json:"batteryLevel"`
	DeviceStatus    DeviceStatus  `json:"deviceStatus"`
	DeviceBrandInfo string        `json:"deviceBrandInfo"`
}
