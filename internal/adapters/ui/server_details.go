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
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

type ServerDetails struct {
	*tview.TextView
}

func NewServerDetails() *ServerDetails {
	details := &ServerDetails{
		TextView: tview.NewTextView(),
	}
	details.build()
	return details
}

func (sd *ServerDetails) build() {
	sd.TextView.SetDynamicColors(true).
		SetWrap(true).
		SetBorder(true).
		SetTitle("Details").
		SetBorderColor(tcell.Color238).
		SetTitleColor(tcell.Color250)
}

func (sd *ServerDetails) UpdateServer(server domain.ServerConfigData) {
	alias := server.Alias
	if alias == "" {
		alias = "-"
	}
	acl := "-"
	if len(server.ACLList) > 0 {
		acl = strings.Join(server.ACLList, ", ")
	}
	tunnelState := "disabled"
	if server.SSHTunnelEnabled {
		tunnelState = "enabled"
	}

	var text strings.Builder
	text.WriteString(fmt.Sprintf("[::b]%s[-]\n\n", tview.Escape(displayName(server))))
	text.WriteString(fmt.Sprintf("URL: [white]%s[-]\nHost: [white]%s[-]\nPort: [white]%d[-]\nAlias: [white]%s[-]\n",
		tview.Escape(server.URL), server.Host, server.Port, tview.Escape(alias)))
	text.WriteString(fmt.Sprintf("ACL: [white]%s[-]\nConnects: [white]%d[-]\n\n",
		tview.Escape(acl), server.ConnectTimes))
	text.WriteString(fmt.Sprintf("SSH tunnel: [white]%s[-]\n  %s\n\n", tunnelState, tunnelSummary(server.SSHTunnel)))

	text.WriteString("[::b]Commands:[-]\n")
	text.WriteString("  Enter: Connect\n  c: Copy URL\n  a: Add server\n  e: Edit server\n  d: Delete server\n  /: Search\n  ?: Help")

	sd.TextView.SetText(text.String())
}

func (sd *ServerDetails) ShowEmpty() {
	sd.TextView.SetText("No servers match the current filter.")
}
