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

	"github.com/Adembc/lazyzoo/internal/core/ports"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const AppName = "lazyzoo"

func DefaultStatusText() string {
	return "[#8A8A8A]a[-] add  [#8A8A8A]e[-] edit  [#8A8A8A]d[-] delete  " +
		"[#8A8A8A]c[-] copy url  [#8A8A8A]/[-] search  [#8A8A8A]?[-] help  [#8A8A8A]q[-] quit"
}

type tui struct {
	logger        *zap.SugaredLogger
	configService ports.ConfigurationService
	version       string
	commit        string

	app        *tview.Application
	root       *tview.Flex
	left       *tview.Flex
	header     *tview.TextView
	searchBar  *tview.InputField
	serverList *ServerList
	details    *ServerDetails
	statusBar  *tview.TextView
	form       *ServerForm

	searchVisible bool
}

// NewTUI wires the terminal UI. serverList must be registered as a
// listener on configService so that it tracks every change.
func NewTUI(logger *zap.SugaredLogger, cs ports.ConfigurationService, serverList *ServerList, version, commit string) *tui {
	return &tui{
		logger:        logger,
		configService: cs,
		serverList:    serverList,
		version:       version,
		commit:        commit,
	}
}

func (t *tui) Run() error {
	t.build()
	t.logger.Infow("starting TUI", "version", t.version)
	if err := t.app.Run(); err != nil {
		t.logger.Errorw("tui run failed", "error", err)
		return err
	}
	return nil
}

func (t *tui) build() {
	t.app = tview.NewApplication()

	t.header = tview.NewTextView().SetDynamicColors(true)
	t.header.SetText(fmt.Sprintf("[::b]%s[-]  [#8A8A8A]%s (%s)[-]", AppName, t.version, t.commit))

	t.details = NewServerDetails()
	t.serverList.
		OnSelectionChange(t.details.UpdateServer).
		OnEmpty(t.details.ShowEmpty)
	if selected, ok := t.serverList.GetSelectedServer(); ok {
		t.details.UpdateServer(selected)
	} else {
		t.details.ShowEmpty()
	}

	t.searchBar = tview.NewInputField().SetLabel(" / ")
	t.searchBar.SetFieldBackgroundColor(tcell.Color236)
	t.searchBar.SetBorder(true)
	t.searchBar.SetChangedFunc(t.handleSearchInput)
	t.searchBar.SetDoneFunc(func(tcell.Key) { t.hideSearchBar() })

	t.statusBar = tview.NewTextView().SetDynamicColors(true).SetText(DefaultStatusText())

	t.left = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.serverList, 0, 1, true)
	content := tview.NewFlex().
		AddItem(t.left, 0, 3, true).
		AddItem(t.details, 0, 2, false)
	t.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.header, 1, 0, false).
		AddItem(content, 0, 1, true).
		AddItem(t.statusBar, 1, 0, false)

	t.app.SetInputCapture(t.handleGlobalKeys)
	t.app.SetRoot(t.root, true)
}
