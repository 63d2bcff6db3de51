// Copyright 2025.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ui

import (
	"fmt"
	"strings"

	"github.com/Adembc/lazyzoo/internal/core/domain"
	"github.com/mattn/go-runewidth"
)

// cellPad pads s with spaces so its display width is at least width cells,
// keeping wide runes in aliases from breaking column alignment.
func cellPad(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// displayName is the alias when set, otherwise the url.
func displayName(s domain.ServerConfigData) string {
	if strings.TrimSpace(s.Alias) != "" {
		return s.Alias
	}
	return s.URL
}

// FormatServerLine renders one server as a fixed-width list row.
func FormatServerLine(s domain.ServerConfigData) string {
	tunnel := " "
	if s.SSHTunnelEnabled {
		tunnel = "T"
	}
	name := runewidth.Truncate(displayName(s), 24, "…")
	return fmt.Sprintf("%s %s %s connects: %d",
		tunnel, cellPad(name, 24), cellPad(fmt.Sprintf("%s:%d", s.Host, s.Port), 28), s.ConnectTimes)
}

func tunnelSummary(t *domain.SSHTunnelConfigData) string {
	if t == nil {
		return "-"
	}
	user := ""
	if t.SSHUsername != "" {
		user = t.SSHUsername + "@"
	}
	return fmt.Sprintf("%s:%d -> %s%s:%d -> %s:%d",
		t.Localhost, t.LocalPort, user, t.SSHHost, t.SSHPort, t.RemoteHost, t.RemotePort)
}
