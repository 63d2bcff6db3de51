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

// SSHTunnelConfiguration describes how a server is reached through an SSH
// jump host instead of directly. It has no identity of its own and lives as
// long as the server that owns it.
type SSHTunnelConfiguration struct {
	Localhost   string
	LocalPort   int
	SSHHost     string
	SSHPort     int
	SSHUsername string
	SSHPassword string
	RemoteHost  string
	RemotePort  int
}

// ServerConfiguration is a single connection profile, keyed by URL.
type ServerConfiguration struct {
	URL              string
	Host             string
	Port             int
	Alias            string
	SSHTunnelEnabled bool
	SSHTunnel        *SSHTunnelConfiguration
	ACLList          []string
	ConnectTimes     int64
}

// Update replaces every field of s with the one from other, except URL
// (the key) and ConnectTimes, which only IncrementConnectTimes may change.
func (s *ServerConfiguration) Update(other ServerConfiguration) {
	s.Host = other.Host
	s.Port = other.Port
	s.Alias = other.Alias
	s.SSHTunnelEnabled = other.SSHTunnelEnabled
	s.SSHTunnel = cloneTunnel(other.SSHTunnel)
	s.ACLList = cloneStrings(other.ACLList)
}

func (s *ServerConfiguration) IncrementConnectTimes() {
	s.ConnectTimes++
}

// Clone returns a deep copy that shares no memory with s.
func (s ServerConfiguration) Clone() ServerConfiguration {
	c := s
	c.SSHTunnel = cloneTunnel(s.SSHTunnel)
	c.ACLList = cloneStrings(s.ACLList)
	return c
}

func cloneTunnel(t *SSHTunnelConfiguration) *SSHTunnelConfiguration {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
