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

package telemetry

import "time"

// DeliveryStatus classifies the outcome of one delivery attempt.
type DeliveryStatus int

const (
	// DeliveryOK: the server accepted the event.
	DeliveryOK DeliveryStatus = iota

	// DeliveryNetworkFailure: transport error, timeout, or non-2xx status.
	// Always transient; never surfaced beyond a log line.
	DeliveryNetworkFailure

	// DeliveryServerRejected: a well-formed response with success=false.
	// Terminal for that single event.
	DeliveryServerRejected

	// DeliveryUnknown: anything that matches none of the above.
	DeliveryUnknown
)

func (s DeliveryStatus) String() string {
	switch s {
	case DeliveryOK:
		return "ok"
	case DeliveryNetworkFailure:
		return "network_failure"
	case DeliveryServerRejected:
		return "server_rejected"
	default:
		return "unknown"
	}
}

// DeliveryResult is returned by every client operation. Callers branch on it
// but never retry automatically; retry policy belongs to the caller or is
// deliberately absent.
type DeliveryResult struct {
	Status  DeliveryStatus
	Message string

	// NextInterval carries the server-suggested heartbeat interval when the
	// heartbeat response provides one; zero otherwise.
	NextInterval time.Duration
}

func (r DeliveryResult) Ok() bool {
	return r.Status == DeliveryOK
}

func resultOK() DeliveryResult {
	return DeliveryResult{Status: DeliveryOK}
}

func resultNetworkFailure(err error) DeliveryResult {
	msg := ""
	if err != nil {
		msg = err.Error()
	}

	return DeliveryResult{Status: DeliveryNetworkFailure, Message: msg}
}

func resultServerRejected(message string) DeliveryResult {
	return DeliveryResult{Status: DeliveryServerRejected, Message: message}
}

func resultUnknown(err error) DeliveryResult {
	msg := ""
	if err != nil {
		msg = err.Error()
	}

	return DeliveryResult{Status: DeliveryUnknown, Message: msg}
}
