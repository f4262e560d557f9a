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

// RegisterResponse is returned by POST /api/device/register.
type RegisterResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	DeviceID string `json:"deviceId,omitempty"`
}

// SmsReceiveResponse is returned by POST /api/sms/receive.
type SmsReceiveResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}

// HeartbeatResponse is returned by POST /api/device/heartbeat.
// NextHeartbeatInterval, when positive, is the server-suggested number of
// seconds until the next heartbeat.
type HeartbeatResponse struct {
	Success               bool   `json:"success"`
	Message               string `json:"message"`
	NextHeartbeatInterval int    `json:"nextHeartbeatInterval,omitempty"`
}
