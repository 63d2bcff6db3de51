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

import "golang.org/x/text/language"

// ConfigData is the persistence-facing snapshot of a whole Configuration.
type ConfigData struct {
	Servers []ServerConfigData `yaml:"servers"`
	Font    FontConfigData     `yaml:"font"`
	Locale  LocaleConfigData   `yaml:"locale"`
}

type ServerConfigData struct {
	URL              string               `yaml:"url"`
	Host             string               `yaml:"host"`
	Port             int                  `yaml:"port"`
	Alias            string               `yaml:"alias,omitempty"`
	SSHTunnelEnabled bool                 `yaml:"ssh_tunnel_enabled"`
	SSHTunnel        *SSHTunnelConfigData `yaml:"ssh_tunnel,omitempty"`
	ACLList          []string             `yaml:"acl_list,omitempty"`
	ConnectTimes     int64                `yaml:"connect_times"`
}

type SSHTunnelConfigData struct {
	Localhost   string `yaml:"localhost"`
	LocalPort   int    `yaml:"local_port"`
	SSHHost     string `yaml:"ssh_host"`
	SSHPort     int    `yaml:"ssh_port"`
	SSHUsername string `yaml:"ssh_username"`
	Password    string `yaml:"password,omitempty"`
	RemoteHost  string `yaml:"remote_host"`
	RemotePort  int    `yaml:"remote_port"`
}

type FontConfigData struct {
	Size int `yaml:"size"`
}

// LocaleConfigData carries the locale as a BCP 47 tag, e.g. "en-US".
type LocaleConfigData struct {
	Lang string `yaml:"lang"`
}

// ToServerConfigData maps a server to a freshly allocated record.
func ToServerConfigData(s ServerConfiguration) ServerConfigData {
	var tunnel *SSHTunnelConfigData
	if t := s.SSHTunnel; t != nil {
		tunnel = &SSHTunnelConfigData{
			Localhost:   t.Localhost,
			LocalPort:   t.LocalPort,
			SSHHost:     t.SSHHost,
			SSHPort:     t.SSHPort,
			SSHUsername: t.SSHUsername,
			Password:    t.SSHPassword,
			RemoteHost:  t.RemoteHost,
			RemotePort:  t.RemotePort,
		}
	}

	return ServerConfigData{
		URL:              s.URL,
		Host:             s.Host,
		Port:             s.Port,
		Alias:            s.Alias,
		SSHTunnelEnabled: s.SSHTunnelEnabled,
		SSHTunnel:        tunnel,
		ACLList:          cloneStrings(s.ACLList),
		ConnectTimes:     s.ConnectTimes,
	}
}

// FromServerConfigData is the inverse of ToServerConfigData.
func FromServerConfigData(d ServerConfigData) ServerConfiguration {
	var tunnel *SSHTunnelConfiguration
	if t := d.SSHTunnel; t != nil {
		tunnel = &SSHTunnelConfiguration{
			Localhost:   t.Localhost,
			LocalPort:   t.LocalPort,
			SSHHost:     t.SSHHost,
			SSHPort:     t.SSHPort,
			SSHUsername: t.SSHUsername,
			SSHPassword: t.Password,
			RemoteHost:  t.RemoteHost,
			RemotePort:  t.RemotePort,
		}
	}

	return ServerConfiguration{
		URL:              d.URL,
		Host:             d.Host,
		Port:             d.Port,
		Alias:            d.Alias,
		SSHTunnelEnabled: d.SSHTunnelEnabled,
		SSHTunnel:        tunnel,
		ACLList:          cloneStrings(d.ACLList),
		ConnectTimes:     d.ConnectTimes,
	}
}

// FromPersistModel maps a stored snapshot back to the values NewConfiguration
// expects. An empty or unparsable locale maps to language.Und.
func FromPersistModel(d ConfigData) ([]ServerConfiguration, FontConfiguration, LocaleConfiguration) {
	servers := make([]ServerConfiguration, 0, len(d.Servers))
	for _, s := range d.Servers {
		servers = append(servers, FromServerConfigData(s))
	}

	locale := LocaleConfiguration{Locale: language.Und}
	if d.Locale.Lang != "" {
		if tag, err := language.Parse(d.Locale.Lang); err == nil {
			locale.Locale = tag
		}
	}

	return servers, FontConfiguration{Size: d.Font.Size}, locale
}
