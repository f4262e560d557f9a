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

import "strings"

const (
	qualityExcellent = "Excellent"
	qualityGood      = "Good"
	qualityFair      = "Fair"
	qualityPoor      = "Poor"
	qualityVeryPoor  = "Very Poor"
)

// levelForDBm maps a dBm reading to the 0..4 bar scale. The steps are fixed
// and monotonic; more negative readings are weaker.
func levelForDBm(dbm int) int {
	switch {
	case dbm >= -50:
		return 4
	case dbm >= -65:
		return 3
	case dbm >= -80:
		return 2
	case dbm >= -100:
		return 1
	default:
		return 0
	}
}

// qualityThresholds are the minimum (exclusive) dBm readings for Excellent,
// Good, Fair and Poor, in that order. Anything below the last cutoff is
// Very Poor.
type qualityThresholds [4]int

var (
	// LTE thresholds follow the RSRP scale.
	lteThresholds = qualityThresholds{-85, -95, -105, -115}

	// NR thresholds follow the SS-RSRP scale.
	nrThresholds = qualityThresholds{-80, -90, -100, -110}

	// WCDMA thresholds follow the RSCP scale.
	wcdmaThresholds = qualityThresholds{-70, -85, -100, -110}

	// GSM and CDMA share the RSSI scale.
	gsmThresholds = qualityThresholds{-75, -85, -95, -105}
)

// qualityFor grades a dBm reading against the thresholds of the given
// network type. Unrecognized network types use the GSM scale.
func qualityFor(networkType string, dbm int) string {
	thresholds := thresholdsForNetwork(networkType)

	switch {
	case dbm > thresholds[0]:
		return qualityExcellent
	case dbm > thresholds[1]:
		return qualityGood
	case dbm > thresholds[2]:
		return qualityFair
	case dbm > thresholds[3]:
		return qualityPoor
	default:
		return qualityVeryPoor
	}
}

func thresholdsForNetwork(networkType string) qualityThresholds {
	switch strings.ToUpper(networkType) {
	case "LTE":
		return lteThresholds
	case "NR", "5G":
		return nrThresholds
	case "WCDMA", "UMTS", "HSPA":
		return wcdmaThresholds
	default:
		return gsmThresholds
	}
}
