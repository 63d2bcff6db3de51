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

package sshconfig

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/Adembc/lazyzoo/internal/core/domain"
	"github.com/kevinburke/ssh_config"
	"go.uber.org/zap"
)

const DefaultLocalhost = "127.0.0.1"

type Resolver struct {
	configPath string
	logger     *zap.SugaredLogger
}

// NewResolver reads host entries from the OpenSSH client config at configPath.
func NewResolver(logger *zap.SugaredLogger, configPath string) *Resolver {
	return &Resolver{configPath: configPath, logger: logger}
}

// Resolve builds tunnel parameters from the Host entry named alias. HostName
// defaults to the alias and Port to 22. A LocalForward directive, if
// present, fills the local and remote ends of the tunnel.
func (r *Resolver) Resolve(alias string) (domain.SSHTunnelConfiguration, error) {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return domain.SSHTunnelConfiguration{}, fmt.Errorf("host alias is required")
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return domain.SSHTunnelConfiguration{}, err
	}
	if !hasHost(cfg, alias) {
		return domain.SSHTunnelConfiguration{}, fmt.Errorf("host '%s' not found in %s", alias, r.configPath)
	}

	tunnel := domain.SSHTunnelConfiguration{SSHHost: alias, SSHPort: 22}
	if v, _ := cfg.Get(alias, "HostName"); v != "" {
		tunnel.SSHHost = v
	}
	if v, _ := cfg.Get(alias, "Port"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return domain.SSHTunnelConfiguration{}, fmt.Errorf("invalid port %q for host '%s'", v, alias)
		}
		tunnel.SSHPort = port
	}
	if v, _ := cfg.Get(alias, "User"); v != "" {
		tunnel.SSHUsername = v
	}
	if v, _ := cfg.Get(alias, "LocalForward"); v != "" {
		if err := applyLocalForward(&tunnel, v); err != nil {
			r.logger.Warnw("ignoring LocalForward", "alias", alias, "value", v, "error", err)
		}
	}
	return tunnel, nil
}

func (r *Resolver) loadConfig() (*ssh_config.Config, error) {
	file, err := os.Open(r.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ssh config: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			r.logger.Warnf("failed to close ssh config: %v", cerr)
		}
	}()

	cfg, err := ssh_config.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ssh config: %w", err)
	}
	return cfg, nil
}

// hasHost reports whether a Host line names alias literally; wildcard
// entries alone do not count.
func hasHost(cfg *ssh_config.Config, alias string) bool {
	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			if pattern.String() == alias {
				return true
			}
		}
	}
	return false
}

// applyLocalForward parses "[bind:]port host:hostport".
func applyLocalForward(t *domain.SSHTunnelConfiguration, value string) error {
	fields := strings.Fields(value)
	if len(fields) != 2 {
		return fmt.Errorf("expected two fields")
	}

	localHost, localPort := DefaultLocalhost, fields[0]
	if strings.Contains(fields[0], ":") {
		h, p, err := net.SplitHostPort(fields[0])
		if err != nil {
			return err
		}
		localHost, localPort = h, p
	}
	lp, err := strconv.Atoi(localPort)
	if err != nil {
		return fmt.Errorf("invalid local port %q", localPort)
	}

	remoteHost, remotePort, err := net.SplitHostPort(fields[1])
	if err != nil {
		return err
	}
	rp, err := strconv.Atoi(remotePort)
	if err != nil {
		return fmt.Errorf("invalid remote port %q", remotePort)
	}

	t.Localhost, t.LocalPort = localHost, lp
	t.RemoteHost, t.RemotePort = remoteHost, rp
	return nil
}
