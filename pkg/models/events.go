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

package models

// SmsEvent is the relay payload for one logically-complete inbound SMS.
// Multipart fragments are reassembled by the SMS collaborator before this
// event is built; each event is consumed exactly once and not retained.
type SmsEvent struct {
	DeviceID       string `json:"deviceId"`
	Sender         string `json:"sender"`
	Message        string `json:"message"`
	Timestamp      int64  `json:"timestamp"`
	Recipient      string `json:"recipient"`
	SlotIndex      *int   `json:"slotIndex,omitempty"`
	SubscriptionID *int   `json:"subscriptionId,omitempty"`
	AndroidVersion string `json:"androidVersion"`
	Manufacturer   string `json:"manufacturer"`
	Model          string `json:"model"`
}

// HeartbeatEvent is regenerated on every scheduler tick from fresh identity
// and signal data.
type HeartbeatEvent struct {
	DeviceID        string        `json:"deviceId"`
	BatteryLevel    int           `json:"batteryLevel"`
	SimSlots        []SimSlotInfo `json:"simSlots"`
	DeviceBrandInfo string        `json:"deviceBrandInfo"`
}
