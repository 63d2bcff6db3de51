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
	"strconv"
	"strings"

	"github.com/Adembc/lazyzoo/internal/core/domain"
	"github.com/rivo/tview"
)

type ServerFormMode int

const (
	ServerFormAdd ServerFormMode = iota
	ServerFormEdit
)

const (
	labelURL         = "URL"
	labelHost        = "Host"
	labelPort        = "Port"
	labelAlias       = "Alias"
	labelACL         = "ACL (comma)"
	labelTunnel      = "SSH tunnel"
	labelLocalhost   = "Local host"
	labelLocalPort   = "Local port"
	labelSSHHost     = "SSH host"
	labelSSHPort     = "SSH port"
	labelSSHUser     = "SSH user"
	labelSSHPassword = "SSH password"
	labelRemoteHost  = "Remote host"
	labelRemotePort  = "Remote port"
)

type ServerForm struct {
	*tview.Form
	mode     ServerFormMode
	onSave   func(domain.ServerConfiguration, ServerFormMode)
	onCancel func()
	onImport func(alias string) (domain.SSHTunnelConfiguration, error)
	onError  func(error)
}

func NewServerForm(mode ServerFormMode, original *domain.ServerConfigData) *ServerForm {
	form := &ServerForm{Form: tview.NewForm(), mode: mode}
	form.build(original)
	return form
}

func (sf *ServerForm) OnSave(fn func(domain.ServerConfiguration, ServerFormMode)) *ServerForm {
	sf.onSave = fn
	return sf
}

func (sf *ServerForm) OnCancel(fn func()) *ServerForm {
	sf.onCancel = fn
	return sf
}

// OnImport sets the lookup used by the "Import tunnel" button, which takes
// the SSH host field as an ssh_config alias.
func (sf *ServerForm) OnImport(fn func(alias string) (domain.SSHTunnelConfiguration, error)) *ServerForm {
	sf.onImport = fn
	return sf
}

func (sf *ServerForm) OnError(fn func(error)) *ServerForm {
	sf.onError = fn
	return sf
}

func (sf *ServerForm) build(original *domain.ServerConfigData) {
	title := "Add Server"
	var s domain.ServerConfigData
	if sf.mode == ServerFormEdit && original != nil {
		title = "Edit Server"
		s = *original
	}
	t := domain.SSHTunnelConfigData{Localhost: "127.0.0.1", SSHPort: 22}
	if s.SSHTunnel != nil {
		t = *s.SSHTunnel
	}

	sf.Form.SetBorder(true).SetTitle(title).SetTitleAlign(tview.AlignLeft)

	sf.Form.AddInputField(labelURL, s.URL, 40, nil, nil)
	if sf.mode == ServerFormEdit {
		// The url identifies the server and cannot change.
		sf.input(labelURL).SetDisabled(true)
	}
	sf.Form.AddInputField(labelHost, s.Host, 40, nil, nil)
	sf.Form.AddInputField(labelPort, portText(s.Port), 8, tview.InputFieldInteger, nil)
	sf.Form.AddInputField(labelAlias, s.Alias, 40, nil, nil)
	sf.Form.AddInputField(labelACL, strings.Join(s.ACLList, ", "), 40, nil, nil)
	sf.Form.AddCheckbox(labelTunnel, s.SSHTunnelEnabled, nil)
	sf.Form.AddInputField(labelLocalhost, t.Localhost, 30, nil, nil)
	sf.Form.AddInputField(labelLocalPort, portText(t.LocalPort), 8, tview.InputFieldInteger, nil)
	sf.Form.AddInputField(labelSSHHost, t.SSHHost, 30, nil, nil)
	sf.Form.AddInputField(labelSSHPort, portText(t.SSHPort), 8, tview.InputFieldInteger, nil)
	sf.Form.AddInputField(labelSSHUser, t.SSHUsername, 30, nil, nil)
	sf.Form.AddPasswordField(labelSSHPassword, t.Password, 30, '*', nil)
	sf.Form.AddInputField(labelRemoteHost, t.RemoteHost, 30, nil, nil)
	sf.Form.AddInputField(labelRemotePort, portText(t.RemotePort), 8, tview.InputFieldInteger, nil)

	sf.Form.AddButton("Save", sf.handleSave)
	sf.Form.AddButton("Import tunnel", sf.handleImport)
	sf.Form.AddButton("Cancel", sf.handleCancel)
	sf.Form.SetCancelFunc(sf.handleCancel)
}

func (sf *ServerForm) handleSave() {
	server, err := sf.Server()
	if err != nil {
		sf.reportError(err)
		return
	}
	if sf.onSave != nil {
		sf.onSave(server, sf.mode)
	}
}

func (sf *ServerForm) handleImport() {
	if sf.onImport == nil {
		return
	}
	tunnel, err := sf.onImport(strings.TrimSpace(sf.input(labelSSHHost).GetText()))
	if err != nil {
		sf.reportError(err)
		return
	}
	if tunnel.Localhost != "" {
		sf.input(labelLocalhost).SetText(tunnel.Localhost)
		sf.input(labelLocalPort).SetText(portText(tunnel.LocalPort))
	}
	sf.input(labelSSHHost).SetText(tunnel.SSHHost)
	sf.input(labelSSHPort).SetText(portText(tunnel.SSHPort))
	sf.input(labelSSHUser).SetText(tunnel.SSHUsername)
	if tunnel.RemoteHost != "" {
		sf.input(labelRemoteHost).SetText(tunnel.RemoteHost)
		sf.input(labelRemotePort).SetText(portText(tunnel.RemotePort))
	}
	if cb, ok := sf.Form.GetFormItemByLabel(labelTunnel).(*tview.Checkbox); ok {
		cb.SetChecked(true)
	}
}

func (sf *ServerForm) handleCancel() {
	if sf.onCancel != nil {
		sf.onCancel()
	}
}

func (sf *ServerForm) reportError(err error) {
	if sf.onError != nil {
		sf.onError(err)
	}
}

// Server reads the form into a ServerConfiguration. Tunnel fields are kept
// only when any of them is filled in. Domain validation is left to the
// caller.
func (sf *ServerForm) Server() (domain.ServerConfiguration, error) {
	port, err := sf.intField(labelPort)
	if err != nil {
		return domain.ServerConfiguration{}, err
	}

	server := domain.ServerConfiguration{
		URL:     strings.TrimSpace(sf.input(labelURL).GetText()),
		Host:    strings.TrimSpace(sf.input(labelHost).GetText()),
		Port:    port,
		Alias:   sf.input(labelAlias).GetText(),
		ACLList: splitList(sf.input(labelACL).GetText()),
	}
	if cb, ok := sf.Form.GetFormItemByLabel(labelTunnel).(*tview.Checkbox); ok {
		server.SSHTunnelEnabled = cb.IsChecked()
	}

	tunnel := domain.SSHTunnelConfiguration{
		Localhost:   strings.TrimSpace(sf.input(labelLocalhost).GetText()),
		SSHHost:     strings.TrimSpace(sf.input(labelSSHHost).GetText()),
		SSHUsername: strings.TrimSpace(sf.input(labelSSHUser).GetText()),
		SSHPassword: sf.input(labelSSHPassword).GetText(),
		RemoteHost:  strings.TrimSpace(sf.input(labelRemoteHost).GetText()),
	}
	for label, dst := range map[string]*int{
		labelLocalPort:  &tunnel.LocalPort,
		labelSSHPort:    &tunnel.SSHPort,
		labelRemotePort: &tunnel.RemotePort,
	} {
		v, err := sf.intField(label)
		if err != nil {
			return domain.ServerConfiguration{}, err
		}
		*dst = v
	}
	if tunnel.SSHHost != "" || tunnel.RemoteHost != "" {
		server.SSHTunnel = &tunnel
	}
	return server, nil
}

func (sf *ServerForm) input(label string) *tview.InputField {
	field, _ := sf.Form.GetFormItemByLabel(label).(*tview.InputField)
	return field
}

// intField reads a port. Blank and 0 both leave it unset.
func (sf *ServerForm) intField(label string) (int, error) {
	text := strings.TrimSpace(sf.input(label).GetText())
	if text == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil || v < 0 || v > 65535 {
		return 0, fmt.Errorf("%s must be a number between 0 and 65535", strings.ToLower(label))
	}
	return v, nil
}

func portText(port int) string {
	if port == 0 {
		return ""
	}
	return strconv.Itoa(port)
}

func splitList(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
