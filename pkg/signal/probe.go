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

// Package signal normalizes radio signal readings across platform capability
// levels into a single human-readable quality string. The probe never
// returns an error and never lets a platform failure escape to its caller.
package signal

import (
	"fmt"

	"github.com/carverauto/smsradar/pkg/logger"
	"github.com/carverauto/smsradar/pkg/platform"
)

const (
	// apiLevelModernSignals is the first platform level exposing the
	// per-cell signal-strength list.
	apiLevelModernSignals = 29

	// apiLevelLegacySignal is the first platform level exposing the
	// single-value dBm reading.
	apiLevelLegacySignal = 17

	statusNoSignal          = "No signal"
	statusSignalUnavailable = "Signal unavailable"
	statusSignalError       = "Signal error"
)

// Probe reads signal strength through whichever strategy the running
// platform supports.
type Probe struct {
	radio  platform.Radio
	logger logger.Logger
}

func NewProbe(radio platform.Radio, log logger.Logger) *Probe {
	return &Probe{
		radio:  radio,
		logger: log,
	}
}

// CurrentSignalStatus returns a formatted signal quality string. It is
// guaranteed not to panic through to the caller; any unexpected failure
// degrades to a descriptive placeholder.
func (p *Probe) CurrentSignalStatus() (status string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("Signal probe recovered from platform panic")

			status = statusSignalError
		}
	}()

	apiLevel := p.radio.APILevel()

	switch {
	case apiLevel >= apiLevelModernSignals:
		return p.modernStatus()
	case apiLevel >= apiLevelLegacySignal:
		return p.legacyStatus()
	default:
		return p.operatorStatus()
	}
}

// modernStatus reads the per-cell measurement list and reports the first
// usable cell.
func (p *Probe) modernStatus() string {
	cells, err := p.radio.CellSignals()
	if err != nil {
		p.logger.Debug().Err(err).Msg("Modern signal list unavailable, trying legacy reading")

		return p.legacyStatus()
	}

	if len(cells) == 0 {
		return statusNoSignal
	}

	cell := cells[0]

	return formatStatus(cell.NetworkType, cell.DBm)
}

// legacyStatus reads the single-value measurement kept for older platforms.
func (p *Probe) legacyStatus() string {
	dbm, err := p.radio.LegacySignalDBm()
	if err != nil {
		p.logger.Debug().Err(err).Msg("Legacy signal reading unavailable, falling back to operator info")

		return p.operatorStatus()
	}

	networkType, _, err := p.radio.NetworkOperator()
	if err != nil {
		networkType = ""
	}

	return formatStatus(networkType, dbm)
}

// operatorStatus is the oldest-platform fallback: no dBm, only the network
// type and operator name.
func (p *Probe) operatorStatus() string {
	networkType, operator, err := p.radio.NetworkOperator()
	if err != nil {
		return statusSignalUnavailable
	}

	if networkType == "" && operator == "" {
		return statusNoSignal
	}

	return fmt.Sprintf("%s (%s)", networkType, operator)
}

func formatStatus(networkType string, dbm int) string {
	return fmt.Sprintf("Level %d (%d dBm) - %s", levelForDBm(dbm), dbm, qualityFor(networkType, dbm))
}
