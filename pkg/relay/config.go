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

package relay

import (
	"errors"

	"github.com/carverauto/smsradar/pkg/heartbeat"
	"github.com/carverauto/smsradar/pkg/logger"
	"github.com/carverauto/smsradar/pkg/telemetry"
)

var errServerURLRequired = errors.New("telemetry base_url is required")

// Config is the agent-wide configuration loaded at startup.
type Config struct {
	Telemetry telemetry.Config `json:"telemetry"`
	Heartbeat heartbeat.Config `json:"heartbeat,omitempty"`
	Logging   *logger.Config   `json:"logging,omitempty"`
}

// Validate is picked up by the config loader after unmarshaling.
func (c *Config) Validate() error {
	if c.Telemetry.BaseURL == "" {
		return errServerURLRequired
	}

	return nil
}
