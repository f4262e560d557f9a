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

package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carverauto/smsradar/pkg/logger"
	"github.com/carverauto/smsradar/pkg/platform"
)

// fakeRadio scripts the platform radio surface.
type fakeRadio struct {
	apiLevel    int
	cells       []platform.CellSignal
	cellsErr    error
	legacyDBm   int
	legacyErr   error
	networkType string
	operator    string
	operatorErr error
	panicOn     bool
}

func (f *fakeRadio) APILevel() int { return f.apiLevel }

func (f *fakeRadio) CellSignals() ([]platform.CellSignal, error) {
	if f.panicOn {
		panic("telephony service died")
	}

	return f.cells, f.cellsErr
}

func (f *fakeRadio) LegacySignalDBm() (int, error) {
	return f.legacyDBm, f.legacyErr
}

func (f *fakeRadio) NetworkOperator() (string, string, error) {
	return f.networkType, f.operator, f.operatorErr
}

func TestCurrentSignalStatus_ModernAPI(t *testing.T) {
	tests := []struct {
		name     string
		cells    []platform.CellSignal
		expected string
	}{
		{
			name:     "strong LTE",
			cells:    []platform.CellSignal{{NetworkType: "LTE", DBm: -45}},
			expected: "Level 4 (-45 dBm) - Excellent",
		},
		{
			name:     "fair LTE",
			cells:    []platform.CellSignal{{NetworkType: "LTE", DBm: -95}},
			expected: "Level 1 (-95 dBm) - Fair",
		},
		{
			name:     "weak NR",
			cells:    []platform.CellSignal{{NetworkType: "NR", DBm: -108}},
			expected: "Level 0 (-108 dBm) - Poor",
		},
		{
			name:     "first cell wins",
			cells:    []platform.CellSignal{{NetworkType: "LTE", DBm: -60}, {NetworkType: "GSM", DBm: -110}},
			expected: "Level 3 (-60 dBm) - Excellent",
		},
		{
			name:     "empty cell list",
			cells:    nil,
			expected: "No signal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := NewProbe(&fakeRadio{apiLevel: 33, cells: tt.cells}, logger.NewTestLogger())

			assert.Equal(t, tt.expected, probe.CurrentSignalStatus())
		})
	}
}

func TestCurrentSignalStatus_LegacyAPI(t *testing.T) {
	radio := &fakeRadio{
		apiLevel:    21,
		legacyDBm:   -72,
		networkType: "WCDMA",
		operator:    "ExampleCell",
	}

	probe := NewProbe(radio, logger.NewTestLogger())

	assert.Equal(t, "Level 2 (-72 dBm) - Good", probe.CurrentSignalStatus())
}

func TestCurrentSignalStatus_OperatorFallback(t *testing.T) {
	radio := &fakeRadio{
		apiLevel:    14,
		networkType: "GSM",
		operator:    "ExampleCell",
	}

	probe := NewProbe(radio, logger.NewTestLogger())

	assert.Equal(t, "GSM (ExampleCell)", probe.CurrentSignalStatus())
}

func TestCurrentSignalStatus_DegradesThroughStrategies(t *testing.T) {
	// Modern list fails, legacy fails, operator succeeds.
	radio := &fakeRadio{
		apiLevel:    30,
		cellsErr:    platform.ErrPermissionDenied,
		legacyErr:   platform.ErrUnsupported,
		networkType: "LTE",
		operator:    "ExampleCell",
	}

	probe := NewProbe(radio, logger.NewTestLogger())

	assert.Equal(t, "LTE (ExampleCell)", probe.CurrentSignalStatus())
}

func TestCurrentSignalStatus_AllSourcesFail(t *testing.T) {
	radio := &fakeRadio{
		apiLevel:    30,
		cellsErr:    platform.ErrPermissionDenied,
		legacyErr:   platform.ErrPermissionDenied,
		operatorErr: platform.ErrPermissionDenied,
	}

	probe := NewProbe(radio, logger.NewTestLogger())

	assert.Equal(t, "Signal unavailable", probe.CurrentSignalStatus())
}

func TestCurrentSignalStatus_RecoversFromPanic(t *testing.T) {
	probe := NewProbe(&fakeRadio{apiLevel: 30, panicOn: true}, logger.NewTestLogger())

	assert.NotPanics(t, func() {
		assert.Equal(t, "Signal error", probe.CurrentSignalStatus())
	})
}

func TestLevelForDBm(t *testing.T) {
	tests := []struct {
		dbm      int
		expected int
	}{
		{-45, 4},
		{-50, 4},
		{-51, 3},
		{-65, 3},
		{-70, 2},
		{-80, 2},
		{-95, 1},
		{-100, 1},
		{-101, 0},
		{-120, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, levelForDBm(tt.dbm), "dbm=%d", tt.dbm)
	}
}

func TestQualityFor_NetworkSpecificThresholds(t *testing.T) {
	tests := []struct {
		networkType string
		dbm         int
		expected    string
	}{
		{"LTE", -45, qualityExcellent},
		{"LTE", -90, qualityGood},
		{"LTE", -95, qualityFair},
		{"LTE", -110, qualityPoor},
		{"LTE", -120, qualityVeryPoor},
		{"NR", -85, qualityGood},
		{"5G", -85, qualityGood},
		{"WCDMA", -65, qualityExcellent},
		{"WCDMA", -90, qualityFair},
		{"GSM", -80, qualityGood},
		{"CDMA", -100, qualityPoor},
		// unrecognized types grade on the GSM scale
		{"EDGE", -70, qualityExcellent},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, qualityFor(tt.networkType, tt.dbm),
			"network=%s dbm=%d", tt.networkType, tt.dbm)
	}
}
