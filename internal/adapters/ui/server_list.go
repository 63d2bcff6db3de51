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
	"strings"

	"github.com/Adembc/lazyzoo/internal/core/domain"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// ServerList shows the configured servers. It is a domain.ChangeListener and
// redraws itself on every configuration change. Changes must arrive on the
// tview event goroutine, or before the application starts.
type ServerList struct {
	*tview.List
	servers           []domain.ServerConfigData
	visible           []domain.ServerConfigData
	filter            string
	onSelectionChange func(domain.ServerConfigData)
	onEmpty           func()
}

func NewServerList() *ServerList {
	list := &ServerList{List: tview.NewList()}
	list.build()
	return list
}

func (sl *ServerList) build() {
	sl.List.ShowSecondaryText(false)
	sl.List.SetBorder(true).
		SetTitle(" Servers ").
		SetTitleAlign(tview.AlignLeft).
		SetBorderColor(tcell.Color238).
		SetTitleColor(tcell.Color250)
	sl.List.
		SetSelectedBackgroundColor(tcell.Color24).
		SetSelectedTextColor(tcell.Color255).
		SetHighlightFullLine(true)

	sl.List.SetChangedFunc(func(index int, _, _ string, _ rune) {
		if index >= 0 && index < len(sl.visible) && sl.onSelectionChange != nil {
			sl.onSelectionChange(sl.visible[index])
		}
	})
}

func (sl *ServerList) OnSelectionChange(fn func(domain.ServerConfigData)) *ServerList {
	sl.onSelectionChange = fn
	return sl
}

func (sl *ServerList) OnEmpty(fn func()) *ServerList {
	sl.onEmpty = fn
	return sl
}

func (sl *ServerList) OnReload(servers []domain.ServerConfigData) {
	sl.servers = servers
	sl.render()
}

func (sl *ServerList) OnServerAdd(server domain.ServerConfigData) {
	sl.servers = append(sl.servers, server)
	sl.render()
}

func (sl *ServerList) OnServerChange(server domain.ServerConfigData) {
	for i := range sl.servers {
		if sl.servers[i].URL == server.URL {
			sl.servers[i] = server
		}
	}
	sl.render()
}

func (sl *ServerList) OnServerRemove(server domain.ServerConfigData) {
	kept := sl.servers[:0]
	for _, s := range sl.servers {
		if s.URL != server.URL {
			kept = append(kept, s)
		}
	}
	sl.servers = kept
	sl.render()
}

// SetFilter limits the list to servers whose url, host or alias contain query.
func (sl *ServerList) SetFilter(query string) {
	sl.filter = strings.ToLower(strings.TrimSpace(query))
	sl.render()
}

func (sl *ServerList) GetSelectedServer() (domain.ServerConfigData, bool) {
	idx := sl.List.GetCurrentItem()
	if idx < 0 || idx >= len(sl.visible) {
		return domain.ServerConfigData{}, false
	}
	return sl.visible[idx], true
}

// Refresh replaces the row for server.URL in place. Counter changes are not
// announced to listeners, so callers push the fresh record themselves.
func (sl *ServerList) Refresh(server domain.ServerConfigData) {
	sl.OnServerChange(server)
}

// Visible returns a copy of the servers currently shown.
func (sl *ServerList) Visible() []domain.ServerConfigData {
	out := make([]domain.ServerConfigData, len(sl.visible))
	copy(out, sl.visible)
	return out
}

func (sl *ServerList) render() {
	current := sl.List.GetCurrentItem()

	sl.visible = sl.visible[:0]
	for _, s := range sl.servers {
		if sl.matches(s) {
			sl.visible = append(sl.visible, s)
		}
	}

	sl.List.Clear()
	for _, s := range sl.visible {
		sl.List.AddItem(FormatServerLine(s), "", 0, nil)
	}

	if len(sl.visible) == 0 {
		if sl.onEmpty != nil {
			sl.onEmpty()
		}
		return
	}
	if current >= len(sl.visible) {
		current = len(sl.visible) - 1
	}
	if current < 0 {
		current = 0
	}
	sl.List.SetCurrentItem(current)
	if sl.onSelectionChange != nil {
		sl.onSelectionChange(sl.visible[current])
	}
}

func (sl *ServerList) matches(s domain.ServerConfigData) bool {
	if sl.filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.URL), sl.filter) ||
		strings.Contains(strings.ToLower(s.Host), sl.filter) ||
		strings.Contains(strings.ToLower(s.Alias), sl.filter)
}
