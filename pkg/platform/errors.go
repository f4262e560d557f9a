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

import "errors"

var (
	// ErrUnsupported indicates the running platform does not expose the
	// requested capability at its API level.
	ErrUnsupported = errors.New("capability not supported on this platform")

	// ErrPermissionDenied indicates the hosting OS denied access to
	// telephony or radio data. Callers degrade to placeholder values.
	ErrPermissionDenied = errors.New("permission denied by host platform")
)
