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
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

const (
	MinFontSize = 8
	MaxFontSize = 50
)

type FontConfiguration struct {
	Size int
}

// Validate checks the size range. Configuration.UpdateFont does not call it;
// callers decide when to.
func (f FontConfiguration) Validate() error {
	if f.Size < MinFontSize || f.Size > MaxFontSize {
		return newError("font.validate", KindInvalidArgument, "",
			fmt.Sprintf("font size %d is outside [%d,%d]", f.Size, MinFontSize, MaxFontSize))
	}
	return nil
}

// LocaleConfiguration holds the UI locale. language.Und means unset.
type LocaleConfiguration struct {
	Locale language.Tag
}

// Configuration is the aggregate root for server profiles and UI settings.
// It is not safe for concurrent use; callers that share it between
// goroutines must serialize every call.
type Configuration struct {
	servers   []*ServerConfiguration
	listeners []ChangeListener
	font      FontConfiguration
	locale    LocaleConfiguration
}

// NewConfiguration copies servers and listeners, validates every server and
// then sends OnReload with all of them to each listener. Listeners are only
// referenced: the Configuration never closes or releases them.
func NewConfiguration(servers []ServerConfiguration, listeners []ChangeListener,
	font FontConfiguration, locale LocaleConfiguration,
) (*Configuration, error) {
	c := &Configuration{
		servers:   make([]*ServerConfiguration, 0, len(servers)),
		listeners: append([]ChangeListener(nil), listeners...),
		font:      font,
		locale:    locale,
	}

	for _, s := range servers {
		if err := checkServer("configuration.new", s); err != nil {
			return nil, err
		}
		if c.find(s.URL) >= 0 {
			return nil, newError("configuration.new", KindDuplicateKey, s.URL, "server already exists")
		}
		clone := s.Clone()
		c.servers = append(c.servers, &clone)
	}

	all := c.snapshotServers()
	for _, l := range c.listeners {
		// Each listener gets its own copy.
		l.OnReload(cloneServerData(all))
	}
	return c, nil
}

func (c *Configuration) Add(server ServerConfiguration) error {
	if err := checkServer("configuration.add", server); err != nil {
		return err
	}
	if c.find(server.URL) >= 0 {
		return newError("configuration.add", KindDuplicateKey, server.URL, "server already exists")
	}

	clone := server.Clone()
	c.servers = append(c.servers, &clone)
	for _, l := range c.listeners {
		l.OnServerAdd(ToServerConfigData(clone))
	}
	return nil
}

// Update merges server onto the stored profile with the same URL, see
// ServerConfiguration.Update for which fields are replaced.
func (c *Configuration) Update(server ServerConfiguration) error {
	if err := checkServer("configuration.update", server); err != nil {
		return err
	}
	i := c.find(server.URL)
	if i < 0 {
		return newError("configuration.update", KindNotFound, server.URL, "server is not registered")
	}

	existing := c.servers[i]
	existing.Update(server)
	for _, l := range c.listeners {
		l.OnServerChange(ToServerConfigData(*existing))
	}
	return nil
}

func (c *Configuration) Delete(url string) error {
	i := c.find(url)
	if i < 0 {
		return newError("configuration.delete", KindNotFound, url, "server is not registered")
	}

	removed := ToServerConfigData(*c.servers[i])
	servers := make([]*ServerConfiguration, 0, len(c.servers)-1)
	servers = append(servers, c.servers[:i]...)
	c.servers = append(servers, c.servers[i+1:]...)

	for _, l := range c.listeners {
		l.OnServerRemove(cloneOne(removed))
	}
	return nil
}

// UpdateFont replaces the font setting without range checking it.
func (c *Configuration) UpdateFont(font FontConfiguration) {
	c.font = font
}

func (c *Configuration) UpdateLocale(locale LocaleConfiguration) error {
	if locale.Locale == language.Und {
		return newError("configuration.update_locale", KindNullLocale, "", "locale is not set")
	}
	c.locale = locale
	return nil
}

// Get returns a copy of the server registered under url.
func (c *Configuration) Get(url string) (ServerConfiguration, bool) {
	i := c.find(url)
	if i < 0 {
		return ServerConfiguration{}, false
	}
	return c.servers[i].Clone(), true
}

func (c *Configuration) Exists(url string) bool {
	return c.find(url) >= 0
}

// Servers returns copies of all servers in insertion order.
func (c *Configuration) Servers() []ServerConfiguration {
	out := make([]ServerConfiguration, 0, len(c.servers))
	for _, s := range c.servers {
		out = append(out, s.Clone())
	}
	return out
}

func (c *Configuration) Font() FontConfiguration {
	return c.font
}

func (c *Configuration) Locale() LocaleConfiguration {
	return c.locale
}

// IncrementConnectTimes bumps the counter of the server under url. Unknown
// urls are ignored and no listener is called.
func (c *Configuration) IncrementConnectTimes(url string) {
	if i := c.find(url); i >= 0 {
		c.servers[i].IncrementConnectTimes()
	}
}

// ToPersistModel returns an independent snapshot of the whole aggregate.
func (c *Configuration) ToPersistModel() ConfigData {
	lang := ""
	if c.locale.Locale != language.Und {
		lang = c.locale.Locale.String()
	}
	return ConfigData{
		Servers: c.snapshotServers(),
		Font:    FontConfigData{Size: c.font.Size},
		Locale:  LocaleConfigData{Lang: lang},
	}
}

func (c *Configuration) find(url string) int {
	for i, s := range c.servers {
		if s.URL == url {
			return i
		}
	}
	return -1
}

func (c *Configuration) snapshotServers() []ServerConfigData {
	out := make([]ServerConfigData, 0, len(c.servers))
	for _, s := range c.servers {
		out = append(out, ToServerConfigData(*s))
	}
	return out
}

// checkServer runs the checks shared by every operation that stores a server.
func checkServer(op string, s ServerConfiguration) error {
	switch {
	case s.URL == "":
		return newError(op, KindNullArgument, "", "url is required")
	case s.Host == "":
		return newError(op, KindNullArgument, s.URL, "host is required")
	case s.Port == 0:
		return newError(op, KindNullArgument, s.URL, "port is required")
	}
	if s.SSHTunnelEnabled && s.SSHTunnel == nil {
		return newError(op, KindInvalidState, s.URL, "tunnel must be configured before enabling")
	}
	if s.Alias != "" && strings.TrimSpace(s.Alias) == "" {
		return newError(op, KindInvalidState, s.URL, "alias must not be all blank")
	}
	return nil
}

func cloneOne(d ServerConfigData) ServerConfigData {
	if d.SSHTunnel != nil {
		t := *d.SSHTunnel
		d.SSHTunnel = &t
	}
	d.ACLList = cloneStrings(d.ACLList)
	return d
}

func cloneServerData(in []ServerConfigData) []ServerConfigData {
	out := make([]ServerConfigData, 0, len(in))
	for _, d := range in {
		out = append(out, cloneOne(d))
	}
	return out
}
