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

package domain

import (
	"errors"
	"testing"

	"golang.org/x/text/language"
)

type event struct {
	kind    string
	servers []ServerConfigData
}

type recordingListener struct {
	events []event
}

func (r *recordingListener) OnReload(servers []ServerConfigData) {
	r.events = append(r.events, event{kind: "reload", servers: servers})
}

func (r *recordingListener) OnServerAdd(server ServerConfigData) {
	r.events = append(r.events, event{kind: "add", servers: []ServerConfigData{server}})
}

func (r *recordingListener) OnServerChange(server ServerConfigData) {
	r.events = append(r.events, event{kind: "change", servers: []ServerConfigData{server}})
}

func (r *recordingListener) OnServerRemove(server ServerConfigData) {
	r.events = append(r.events, event{kind: "remove", servers: []ServerConfigData{server}})
}

func zkServer(url, host string, port int) ServerConfiguration {
	return ServerConfiguration{URL: url, Host: host, Port: port}
}

func newTestConfiguration(t *testing.T, servers []ServerConfiguration, listeners ...ChangeListener) *Configuration {
	t.Helper()
	c, err := NewConfiguration(servers, listeners, FontConfiguration{Size: 14},
		LocaleConfiguration{Locale: language.AmericanEnglish})
	if err != nil {
		t.Fatalf("NewConfiguration: %v", err)
	}
	return c
}

func TestNewConfigurationReloadsOnce(t *testing.T) {
	l := &recordingListener{}
	initial := []ServerConfiguration{
		zkServer("zk://a:2181", "a", 2181),
		zkServer("zk://b:2181", "b", 2181),
	}
	newTestConfiguration(t, initial, l)

	if len(l.events) != 1 || l.events[0].kind != "reload" {
		t.Fatalf("expected exactly one reload event, got %+v", l.events)
	}
	got := l.events[0].servers
	if len(got) != 2 || got[0].URL != "zk://a:2181" || got[1].URL != "zk://b:2181" {
		t.Fatalf("unexpected reload payload: %+v", got)
	}
}

func TestNewConfigurationCopiesInput(t *testing.T) {
	initial := []ServerConfiguration{zkServer("zk://a:2181", "a", 2181)}
	initial[0].ACLList = []string{"digest:u:p"}
	c := newTestConfiguration(t, initial)

	initial[0].Host = "changed"
	initial[0].ACLList[0] = "changed"

	got, _ := c.Get("zk://a:2181")
	if got.Host != "a" || got.ACLList[0] != "digest:u:p" {
		t.Fatalf("caller slice aliased internal state: %+v", got)
	}
}

func TestNewConfigurationRejectsInvalidServers(t *testing.T) {
	_, err := NewConfiguration([]ServerConfiguration{
		zkServer("zk://a:2181", "a", 2181),
		zkServer("zk://a:2181", "a", 2181),
	}, nil, FontConfiguration{}, LocaleConfiguration{})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}

	l := &recordingListener{}
	_, err = NewConfiguration([]ServerConfiguration{{URL: "zk://a:2181"}},
		[]ChangeListener{l}, FontConfiguration{}, LocaleConfiguration{})
	if !errors.Is(err, ErrNullArgument) {
		t.Fatalf("expected null argument, got %v", err)
	}
	if len(l.events) != 0 {
		t.Fatalf("listener must not be called when construction fails")
	}
}

func TestAddGetExists(t *testing.T) {
	c := newTestConfiguration(t, nil)
	urls := []string{"zk://a:2181", "zk://b:2181", "zk://c:2182"}
	for _, u := range urls {
		if err := c.Add(zkServer(u, "host", 2181)); err != nil {
			t.Fatalf("Add(%s): %v", u, err)
		}
	}
	for _, u := range urls {
		got, ok := c.Get(u)
		if !ok || got.URL != u {
			t.Fatalf("Get(%s) = %+v, %v", u, got, ok)
		}
		if !c.Exists(u) {
			t.Fatalf("Exists(%s) = false", u)
		}
	}
	if c.Exists("zk://missing:2181") {
		t.Fatalf("Exists on unknown url returned true")
	}
}

func TestAddDuplicateLeavesStateUnchanged(t *testing.T) {
	l := &recordingListener{}
	c := newTestConfiguration(t, nil, l)
	srv := zkServer("zk://a:2181", "a", 2181)

	if err := c.Add(srv); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(l.events) != 2 || l.events[1].kind != "add" || l.events[1].servers[0].ConnectTimes != 0 {
		t.Fatalf("unexpected events: %+v", l.events)
	}

	err := c.Add(srv)
	if !errors.Is(err, ErrDuplicateKey) || !IsKind(err, KindDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}
	if len(c.Servers()) != 1 {
		t.Fatalf("expected 1 server, got %d", len(c.Servers()))
	}
	if len(l.events) != 2 {
		t.Fatalf("listener called on failed add: %+v", l.events)
	}
}

func TestPreconditions(t *testing.T) {
	tests := []struct {
		name   string
		server ServerConfiguration
		want   error
	}{
		{name: "missing url", server: ServerConfiguration{Host: "a", Port: 2181}, want: ErrNullArgument},
		{name: "missing host", server: ServerConfiguration{URL: "zk://a", Port: 2181}, want: ErrNullArgument},
		{name: "missing port", server: ServerConfiguration{URL: "zk://a", Host: "a"}, want: ErrNullArgument},
		{
			name:   "tunnel enabled without tunnel",
			server: ServerConfiguration{URL: "zk://a", Host: "a", Port: 2181, SSHTunnelEnabled: true},
			want:   ErrInvalidState,
		},
		{
			name:   "blank alias",
			server: ServerConfiguration{URL: "zk://a", Host: "a", Port: 2181, Alias: "   "},
			want:   ErrInvalidState,
		},
		{name: "empty alias", server: ServerConfiguration{URL: "zk://a", Host: "a", Port: 2181, Alias: ""}},
		{name: "alias", server: ServerConfiguration{URL: "zk://a", Host: "a", Port: 2181, Alias: " local "}},
		{
			name: "tunnel enabled with tunnel",
			server: ServerConfiguration{
				URL: "zk://a", Host: "a", Port: 2181, SSHTunnelEnabled: true,
				SSHTunnel: &SSHTunnelConfiguration{SSHHost: "bastion", SSHPort: 22},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &recordingListener{}
			c := newTestConfiguration(t, nil, l)
			err := c.Add(tt.server)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected success, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if len(c.Servers()) != 0 || len(l.events) != 1 {
				t.Fatalf("state changed on failed add")
			}
		})
	}
}

func TestUpdateMergesAndPreservesCounter(t *testing.T) {
	l := &recordingListener{}
	c := newTestConfiguration(t, []ServerConfiguration{zkServer("zk://a:2181", "a", 2181)}, l)
	c.IncrementConnectTimes("zk://a:2181")

	err := c.Update(ServerConfiguration{
		URL: "zk://a:2181", Host: "a2", Port: 2182, Alias: "prod",
		ACLList: []string{"world:anyone"}, ConnectTimes: 99,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := c.Get("zk://a:2181")
	if got.Host != "a2" || got.Port != 2182 || got.Alias != "prod" || len(got.ACLList) != 1 {
		t.Fatalf("fields not merged: %+v", got)
	}
	if got.ConnectTimes != 1 {
		t.Fatalf("expected counter preserved at 1, got %d", got.ConnectTimes)
	}
	last := l.events[len(l.events)-1]
	if last.kind != "change" || last.servers[0].Host != "a2" || last.servers[0].ConnectTimes != 1 {
		t.Fatalf("unexpected change event: %+v", last)
	}
}

func TestUpdateAndDeleteUnknownURL(t *testing.T) {
	l := &recordingListener{}
	c := newTestConfiguration(t, nil, l)

	if err := c.Update(zkServer("zk://a:2181", "a", 2181)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update: expected not found, got %v", err)
	}
	if err := c.Delete("zk://a:2181"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete: expected not found, got %v", err)
	}
	if len(l.events) != 1 {
		t.Fatalf("listener called on failed operations: %+v", l.events)
	}
}

func TestAddUpdateDeleteSequence(t *testing.T) {
	l := &recordingListener{}
	c := newTestConfiguration(t, nil, l)
	srv := ServerConfiguration{URL: "zk://a:2181", Host: "a", Port: 2181}

	if err := c.Add(srv); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := c.Add(srv); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}
	c.IncrementConnectTimes("zk://a:2181")
	c.IncrementConnectTimes("zk://a:2181")
	if got, _ := c.Get("zk://a:2181"); got.ConnectTimes != 2 {
		t.Fatalf("expected 2 connects, got %d", got.ConnectTimes)
	}

	if err := c.Delete("zk://a:2181"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := c.Get("zk://a:2181"); ok {
		t.Fatalf("server still present after delete")
	}

	kinds := make([]string, 0, len(l.events))
	for _, e := range l.events {
		kinds = append(kinds, e.kind)
	}
	if len(kinds) != 3 || kinds[0] != "reload" || kinds[1] != "add" || kinds[2] != "remove" {
		t.Fatalf("unexpected event sequence %v", kinds)
	}
	if removed := l.events[2].servers[0]; removed.ConnectTimes != 2 {
		t.Fatalf("remove event should carry pre-deletion snapshot, got %+v", removed)
	}
}

func TestIncrementConnectTimesUnknownIsNoop(t *testing.T) {
	l := &recordingListener{}
	c := newTestConfiguration(t, []ServerConfiguration{zkServer("zk://a:2181", "a", 2181)}, l)
	for i := 0; i < 5; i++ {
		c.IncrementConnectTimes("zk://a:2181")
	}
	c.IncrementConnectTimes("zk://missing:2181")

	if got, _ := c.Get("zk://a:2181"); got.ConnectTimes != 5 {
		t.Fatalf("expected 5, got %d", got.ConnectTimes)
	}
	if len(l.events) != 1 {
		t.Fatalf("increment must not notify: %+v", l.events)
	}
}

func TestListenersCalledInRegistrationOrder(t *testing.T) {
	var order []string
	first := &orderListener{name: "first", order: &order}
	second := &orderListener{name: "second", order: &order}
	c := newTestConfiguration(t, nil, first, second)

	if err := c.Add(zkServer("zk://a:2181", "a", 2181)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	want := []string{"first:reload", "second:reload", "first:add", "second:add"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

type orderListener struct {
	name  string
	order *[]string
}

func (o *orderListener) OnReload([]ServerConfigData) { *o.order = append(*o.order, o.name+":reload") }
func (o *orderListener) OnServerAdd(ServerConfigData) { *o.order = append(*o.order, o.name+":add") }
func (o *orderListener) OnServerChange(ServerConfigData) {
	*o.order = append(*o.order, o.name+":change")
}
func (o *orderListener) OnServerRemove(ServerConfigData) {
	*o.order = append(*o.order, o.name+":remove")
}

func TestListenerPayloadIsNotLive(t *testing.T) {
	l := &recordingListener{}
	c := newTestConfiguration(t, nil, l)
	srv := zkServer("zk://a:2181", "a", 2181)
	srv.ACLList = []string{"ip:10.0.0.1"}
	if err := c.Add(srv); err != nil {
		t.Fatalf("Add: %v", err)
	}

	l.events[1].servers[0].ACLList[0] = "tampered"
	if got, _ := c.Get("zk://a:2181"); got.ACLList[0] != "ip:10.0.0.1" {
		t.Fatalf("listener payload aliases the aggregate")
	}
}

func TestFontAndLocale(t *testing.T) {
	c := newTestConfiguration(t, nil)

	c.UpdateFont(FontConfiguration{Size: 99})
	if c.Font().Size != 99 {
		t.Fatalf("UpdateFont must not validate, got %d", c.Font().Size)
	}
	if err := c.Font().Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	for _, size := range []int{MinFontSize, 14, MaxFontSize} {
		if err := (FontConfiguration{Size: size}).Validate(); err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
	}

	err := c.UpdateLocale(LocaleConfiguration{})
	if !errors.Is(err, ErrNullLocale) || !errors.Is(err, ErrNullArgument) || !IsKind(err, KindNullLocale) {
		t.Fatalf("expected null locale, got %v", err)
	}
	if c.Locale().Locale != language.AmericanEnglish {
		t.Fatalf("locale changed on failed update")
	}
	if err := c.UpdateLocale(LocaleConfiguration{Locale: language.SimplifiedChinese}); err != nil {
		t.Fatalf("UpdateLocale: %v", err)
	}
	if c.Locale().Locale != language.SimplifiedChinese {
		t.Fatalf("locale not updated")
	}
}
