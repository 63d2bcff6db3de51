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
	"time"

	"github.com/Adembc/lazyzoo/internal/core/domain"
	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// =============================================================================
// Event Handlers (handle user input/events)
// =============================================================================

func (t *tui) handleGlobalKeys(event *tcell.EventKey) *tcell.EventKey {
	// Forms, modals and the search bar get keys unmodified.
	if t.app.GetFocus() != t.serverList {
		return event
	}

	switch event.Rune() {
	case 'q':
		t.app.Stop()
		return nil
	case '/':
		t.showSearchBar()
		return nil
	case 'a':
		t.handleServerAdd()
		return nil
	case 'e':
		t.handleServerEdit()
		return nil
	case 'd':
		t.handleServerDelete()
		return nil
	case 'c':
		t.handleCopyURL()
		return nil
	case '?':
		t.showHelpModal()
		return nil
	}

	if event.Key() == tcell.KeyEnter {
		t.handleServerConnect()
		return nil
	}
	return event
}

func (t *tui) handleCopyURL() {
	if server, ok := t.serverList.GetSelectedServer(); ok {
		if err := clipboard.WriteAll(server.URL); err == nil {
			t.showStatusTemp("Copied: " + server.URL)
		} else {
			t.logger.Warnw("clipboard write failed", "error", err)
			t.showStatusTemp("Failed to copy to clipboard")
		}
	}
}

func (t *tui) handleSearchInput(query string) {
	t.serverList.SetFilter(query)
}

// handleServerConnect counts a connection to the selected server. Opening the
// session itself belongs to the connection manager, not this UI.
func (t *tui) handleServerConnect() {
	if server, ok := t.serverList.GetSelectedServer(); ok {
		if err := t.configService.RecordConnect(server.URL); err != nil {
			t.showError(err)
			return
		}
		if updated, ok := t.configService.GetServer(server.URL); ok {
			t.serverList.Refresh(domain.ToServerConfigData(updated))
		}
		t.showStatusTemp("Connected to " + server.URL)
	}
}

func (t *tui) handleServerAdd() {
	t.showServerForm(ServerFormAdd, nil)
}

func (t *tui) handleServerEdit() {
	if server, ok := t.serverList.GetSelectedServer(); ok {
		t.showServerForm(ServerFormEdit, &server)
	}
}

func (t *tui) handleServerSave(server domain.ServerConfiguration, mode ServerFormMode) {
	var err error
	if mode == ServerFormEdit {
		err = t.configService.UpdateServer(server)
	} else {
		err = t.configService.AddServer(server)
	}
	if err != nil {
		t.showError(err)
		return
	}
	t.returnToMain()
	t.showStatusTemp("Saved " + server.URL)
}

func (t *tui) handleServerDelete() {
	if server, ok := t.serverList.GetSelectedServer(); ok {
		t.showDeleteConfirmModal(server)
	}
}

// =============================================================================
// UI Display Functions (show UI elements/modals)
// =============================================================================

func (t *tui) showServerForm(mode ServerFormMode, original *domain.ServerConfigData) {
	form := NewServerForm(mode, original).
		OnSave(t.handleServerSave).
		OnImport(t.configService.ImportTunnel).
		OnError(t.showError).
		OnCancel(t.returnToMain)
	t.form = form
	t.app.SetRoot(form, true)
	t.app.SetFocus(form)
}

func (t *tui) showSearchBar() {
	t.left.Clear()
	t.left.AddItem(t.searchBar, 3, 0, true)
	t.left.AddItem(t.serverList, 0, 1, false)
	t.app.SetFocus(t.searchBar)
	t.searchVisible = true
}

func (t *tui) showDeleteConfirmModal(server domain.ServerConfigData) {
	msg := fmt.Sprintf("Delete server %s (%s:%d)?\n\nThis action cannot be undone.",
		displayName(server), server.Host, server.Port)

	modal := tview.NewModal().
		SetText(msg).
		AddButtons([]string{"Cancel", "Confirm"}).
		SetDoneFunc(func(buttonIndex int, _ string) {
			t.returnToMain()
			if buttonIndex == 1 {
				if err := t.configService.DeleteServer(server.URL); err != nil {
					t.showError(err)
				}
			}
		})

	t.app.SetRoot(modal, true)
}

// showError displays err in a modal, then goes back to the open form if
// there is one so the input can be fixed.
func (t *tui) showError(err error) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Error: %v", err)).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(int, string) {
			if t.form != nil {
				t.app.SetRoot(t.form, true)
				t.app.SetFocus(t.form)
				return
			}
			t.returnToMain()
		})
	t.app.SetRoot(modal, true)
}

func (t *tui) showHelpModal() {
	text := "Keyboard shortcuts:\n\n" +
		"  ↑/↓            Navigate\n" +
		"  Enter          Connect\n" +
		"  c              Copy server URL\n" +
		"  a              Add server\n" +
		"  e              Edit server\n" +
		"  d              Delete server\n" +
		"  /              Search\n" +
		"  q              Quit\n" +
		"  ?              Help\n"

	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Close"}).
		SetDoneFunc(func(int, string) { t.returnToMain() })

	t.app.SetRoot(modal, true)
}

// =============================================================================
// UI State Management
// =============================================================================

func (t *tui) hideSearchBar() {
	t.left.Clear()
	t.left.AddItem(t.serverList, 0, 1, true)
	t.app.SetFocus(t.serverList)
	t.searchVisible = false
}

func (t *tui) returnToMain() {
	t.form = nil
	t.app.SetRoot(t.root, true)
	if t.searchVisible {
		t.app.SetFocus(t.searchBar)
		return
	}
	t.app.SetFocus(t.serverList)
}

// showStatusTemp displays a temporary message in the status bar and then restores the default text.
func (t *tui) showStatusTemp(msg string) {
	if t.statusBar == nil {
		return
	}
	t.statusBar.SetText("[#A0FFA0]" + tview.Escape(msg) + "[-]")
	time.AfterFunc(2*time.Second, func() {
		if t.app != nil {
			t.app.QueueUpdateDraw(func() {
				if t.statusBar != nil {
					t.statusBar.SetText(DefaultStatusText())
				}
			})
		}
	})
}
