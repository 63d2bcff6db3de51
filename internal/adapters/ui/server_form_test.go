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
	"errors"
	"strings"
	"testing"

	"github.com/Adembc/lazyzoo/internal/core/domain"
)

func TestServerFormEditPrefillsAndReads(t *testing.T) {
	original := domain.ServerConfigData{
		URL: "zk://a:2181", Host: "a", Port: 2181, Alias: "alpha",
		ACLList: []string{"digest:u:p", "ip:10.0.0.1"}, SSHTunnelEnabled: true,
		SSHTunnel: &domain.SSHTunnelConfigData{
			Localhost: "127.0.0.1", LocalPort: 12181, SSHHost: "bastion", SSHPort: 22,
			SSHUsername: "ops", Password: "pw", RemoteHost: "a", RemotePort: 2181,
		},
	}

	form := NewServerForm(ServerFormEdit, &original)
	got, err := form.Server()
	if err != nil {
		t.Fatalf("Server: %v", err)
	}
	if got.URL != original.URL || got.Host != "a" || got.Port != 2181 || got.Alias != "alpha" {
		t.Fatalf("unexpected server: %+v", got)
	}
	if len(got.ACLList) != 2 || got.ACLList[1] != "ip:10.0.0.1" {
		t.Fatalf("unexpected acl: %v", got.ACLList)
	}
	if !got.SSHTunnelEnabled || got.SSHTunnel == nil || got.SSHTunnel.SSHPassword != "pw" || got.SSHTunnel.LocalPort != 12181 {
		t.Fatalf("unexpected tunnel: %+v", got.SSHTunnel)
	}
}

func TestServerFormAddWithoutTunnel(t *testing.T) {
	form := NewServerForm(ServerFormAdd, nil)
	form.input(labelURL).SetText("zk://new:2181")
	form.input(labelHost).SetText("new")
	form.input(labelPort).SetText("2181")

	var saved domain.ServerConfiguration
	form.OnSave(func(s domain.ServerConfiguration, mode ServerFormMode) {
		if mode != ServerFormAdd {
			t.Fatalf("unexpected mode %v", mode)
		}
		saved = s
	})
	form.handleSave()

	if saved.URL != "zk://new:2181" || saved.Port != 2181 || saved.SSHTunnel != nil || saved.SSHTunnelEnabled {
		t.Fatalf("unexpected saved server: %+v", saved)
	}
}

func TestServerFormImportTunnel(t *testing.T) {
	form := NewServerForm(ServerFormAdd, nil)
	form.input(labelSSHHost).SetText("bastion")

	var asked string
	form.OnImport(func(alias string) (domain.SSHTunnelConfiguration, error) {
		asked = alias
		return domain.SSHTunnelConfiguration{
			Localhost: "127.0.0.1", LocalPort: 12181,
			SSHHost: "bastion.example.com", SSHPort: 2222, SSHUsername: "ops",
			RemoteHost: "zk", RemotePort: 2181,
		}, nil
	})
	form.handleImport()

	got, err := form.Server()
	if err != nil {
		t.Fatalf("Server: %v", err)
	}
	if asked != "bastion" || !got.SSHTunnelEnabled || got.SSHTunnel.SSHHost != "bastion.example.com" ||
		got.SSHTunnel.SSHPort != 2222 || got.SSHTunnel.RemoteHost != "zk" {
		t.Fatalf("import not applied: %+v", got.SSHTunnel)
	}

	var reported error
	form.OnError(func(err error) { reported = err })
	form.OnImport(func(string) (domain.SSHTunnelConfiguration, error) {
		return domain.SSHTunnelConfiguration{}, errors.New("unknown host")
	})
	form.handleImport()
	if reported == nil {
		t.Fatalf("expected import error to be reported")
	}
}

func TestServerFormRejectsBadPort(t *testing.T) {
	form := NewServerForm(ServerFormAdd, nil)
	form.input(labelPort).SetText("70000")
	if _, err := form.Server(); err == nil {
		t.Fatalf("expected port error")
	}
}

func TestServerFormPortRange(t *testing.T) {
	form := NewServerForm(ServerFormAdd, nil)
	form.input(labelURL).SetText("zk://a:2181")
	form.input(labelHost).SetText("a")

	form.input(labelPort).SetText("0")
	got, err := form.Server()
	if err != nil || got.Port != 0 {
		t.Fatalf("port 0 should read as unset: %+v %v", got, err)
	}

	form.input(labelPort).SetText("-1")
	_, err = form.Server()
	if err == nil || !strings.Contains(err.Error(), "between 0 and 65535") {
		t.Fatalf("unexpected error: %v", err)
	}
}
