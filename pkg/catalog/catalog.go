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

// Package catalog defines the static table of well-known ports probed on
// every run.
package catalog

import "github.com/portreach/portreach/pkg/models"

// Category labels used by the catalog. The report groups results under these
// in first-appearance order.
const (
	CategoryWeb       = "Web"
	CategoryMail      = "Mail"
	CategoryDatabase  = "Database"
	CategoryRemote    = "Remote"
	CategoryFile      = "File"
	CategoryContainer = "Container"
	CategoryOther     = "Other"
)

// commonPorts is the probe catalog. Order matters: it is the presentation
// order of the report. 8080 and 8443 appear twice on purpose, once for their
// alternate-HTTP use and once for their proxy use; both rows are probed.
var commonPorts = []models.PortEntry{
	{Port: 80, Service: "HTTP", Category: CategoryWeb},
	{Port: 443, Service: "HTTPS", Category: CategoryWeb},
	{Port: 8080, Service: "HTTP-ALT", Category: CategoryWeb},
	{Port: 8443, Service: "HTTPS-ALT", Category: CategoryWeb},

	{Port: 25, Service: "SMTP", Category: CategoryMail},
	{Port: 465, Service: "SMTPS", Category: CategoryMail},
	{Port: 587, Service: "Submission", Category: CategoryMail},
	{Port: 110, Service: "POP3", Category: CategoryMail},
	{Port: 995, Service: "POP3S", Category: CategoryMail},
	{Port: 143, Service: "IMAP", Category: CategoryMail},
	{Port: 993, Service: "IMAPS", Category: CategoryMail},

	{Port: 3306, Service: "MySQL", Category: CategoryDatabase},
	{Port: 5432, Service: "PostgreSQL", Category: CategoryDatabase},
	{Port: 27017, Service: "MongoDB", Category: CategoryDatabase},
	{Port: 6379, Service: "Redis", Category: CategoryDatabase},

	{Port: 22, Service: "SSH", Category: CategoryRemote},
	{Port: 3389, Service: "RDP", Category: CategoryRemote},
	{Port: 5900, Service: "VNC", Category: CategoryRemote},

	{Port: 21, Service: "FTP", Category: CategoryFile},
	{Port: 69, Service: "TFTP", Category: CategoryFile},
	{Port: 115, Service: "SFTP", Category: CategoryFile},

	{Port: 2375, Service: "Docker", Category: CategoryContainer},
	{Port: 2376, Service: "Docker-TLS", Category: CategoryContainer},
	{Port: 6443, Service: "Kubernetes", Category: CategoryContainer},

	{Port: 53, Service: "DNS", Category: CategoryOther},
	{Port: 123, Service: "NTP", Category: CategoryOther},
	{Port: 161, Service: "SNMP", Category: CategoryOther},
	{Port: 389, Service: "LDAP", Category: CategoryOther},
	{Port: 445, Service: "SMB", Category: CategoryOther},
	{Port: 548, Service: "AFP", Category: CategoryOther},
	{Port: 12345, Service: "NetBus", Category: CategoryOther},
	{Port: 31337, Service: "Back Orifice", Category: CategoryOther},
	{Port: 6667, Service: "IRC", Category: CategoryOther},
	{Port: 6697, Service: "IRC-TLS", Category: CategoryOther},
	{Port: 8080, Service: "Proxy", Category: CategoryOther},
	{Port: 8443, Service: "Proxy-SSL", Category: CategoryOther},
	{Port: 9050, Service: "Tor", Category: CategoryOther},
	{Port: 9150, Service: "Tor-SSL", Category: CategoryOther},
	{Port: 9999, Service: "Urchin", Category: CategoryOther},
	{Port: 10000, Service: "Webmin", Category: CategoryOther},
	{Port: 11211, Service: "Memcached", Category: CategoryOther},
}

// Common returns the probe catalog in presentation order. The returned slice
// is a copy; the catalog itself is never mutated.
func Common() []models.PortEntry {
	out := make([]models.PortEntry, len(commonPorts))
	copy(out, commonPorts)

	return out
}

// Size returns the catalog length. The renderer uses it to size the
// progress bar before scanning starts.
func Size() int {
	return len(commonPorts)
}
