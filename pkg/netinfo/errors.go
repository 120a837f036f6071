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

package netinfo

import "errors"

var (
	errNoLocalAddress    = errors.New("no suitable non-loopback IPv4 address found")
	errEchoServiceFailed = errors.New("echo service returned non-OK status")
	errEchoNotAnIP       = errors.New("echo service response is not an IP literal")
)
