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

package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Adembc/lazyzoo/internal/core/domain"
	"github.com/Adembc/lazyzoo/internal/core/ports"
	"go.uber.org/zap"
)

type configurationService struct {
	mu             sync.Mutex
	config         *domain.Configuration
	repository     ports.ConfigRepository
	tunnelResolver ports.TunnelResolver
	logger         *zap.SugaredLogger
}

// NewConfigurationService loads the stored configuration and builds the
// aggregate around it. Listeners receive the initial reload before this
// returns. They are called with the service lock held and must not call
// back into the service.
func NewConfigurationService(logger *zap.SugaredLogger, repo ports.ConfigRepository,
	resolver ports.TunnelResolver, listeners ...domain.ChangeListener,
) (*configurationService, error) {
	data, err := repo.Load()
	if err != nil {
		logger.Errorw("failed to load configuration", "error", err)
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	servers, font, locale := domain.FromPersistModel(data)
	all := append([]domain.ChangeListener{newLoggingListener(logger)}, listeners...)
	config, err := domain.NewConfiguration(servers, all, font, locale)
	if err != nil {
		logger.Errorw("stored configuration is invalid", "error", err)
		return nil, err
	}

	return &configurationService{
		config:         config,
		repository:     repo,
		tunnelResolver: resolver,
		logger:         logger,
	}, nil
}

// ListServers returns servers in insertion order, filtered by a
// case-insensitive match on url, host or alias.
func (s *configurationService) ListServers(query string) []domain.ServerConfiguration {
	s.mu.Lock()
	servers := s.config.Servers()
	s.mu.Unlock()

	if query == "" {
		return servers
	}
	queryLower := strings.ToLower(query)
	filtered := make([]domain.ServerConfiguration, 0, len(servers))
	for _, srv := range servers {
		if matchesQuery(srv, queryLower) {
			filtered = append(filtered, srv)
		}
	}
	return filtered
}

func matchesQuery(srv domain.ServerConfiguration, queryLower string) bool {
	return strings.Contains(strings.ToLower(srv.URL), queryLower) ||
		strings.Contains(strings.ToLower(srv.Host), queryLower) ||
		strings.Contains(strings.ToLower(srv.Alias), queryLower)
}

func (s *configurationService) GetServer(url string) (domain.ServerConfiguration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Get(url)
}

func (s *configurationService) ServerExists(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.Exists(url)
}

// AddServer registers a new server and persists the result.
func (s *configurationService) AddServer(server domain.ServerConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.config.Add(server); err != nil {
		s.logger.Warnw("validation failed on add", "error", err, "url", server.URL)
		return err
	}
	return s.persist()
}

// UpdateServer merges server onto the registered server with the same url.
func (s *configurationService) UpdateServer(server domain.ServerConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.config.Update(server); err != nil {
		s.logger.Warnw("validation failed on update", "error", err, "url", server.URL)
		return err
	}
	return s.persist()
}

func (s *configurationService) DeleteServer(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.config.Delete(url); err != nil {
		s.logger.Warnw("failed to delete server", "error", err, "url", url)
		return err
	}
	return s.persist()
}

// RecordConnect counts a successful connection. Unknown urls are ignored.
func (s *configurationService) RecordConnect(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Exists(url) {
		s.logger.Debugw("connect recorded for unknown server", "url", url)
		return nil
	}
	s.config.IncrementConnectTimes(url)
	return s.persist()
}

// UpdateFont validates the size range before storing it.
func (s *configurationService) UpdateFont(font domain.FontConfiguration) error {
	if err := font.Validate(); err != nil {
		s.logger.Warnw("validation failed on font update", "error", err, "size", font.Size)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.UpdateFont(font)
	return s.persist()
}

func (s *configurationService) UpdateLocale(locale domain.LocaleConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.config.UpdateLocale(locale); err != nil {
		s.logger.Warnw("validation failed on locale update", "error", err)
		return err
	}
	return s.persist()
}

// ImportTunnel looks up jump host parameters for an ssh_config host alias.
func (s *configurationService) ImportTunnel(alias string) (domain.SSHTunnelConfiguration, error) {
	if s.tunnelResolver == nil {
		return domain.SSHTunnelConfiguration{}, fmt.Errorf("no tunnel resolver configured")
	}
	tunnel, err := s.tunnelResolver.Resolve(alias)
	if err != nil {
		s.logger.Errorw("failed to resolve tunnel", "error", err, "alias", alias)
		return domain.SSHTunnelConfiguration{}, err
	}
	return tunnel, nil
}

func (s *configurationService) Snapshot() domain.ConfigData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.ToPersistModel()
}

// persist must be called with s.mu held.
func (s *configurationService) persist() error {
	if err := s.repository.Save(s.config.ToPersistModel()); err != nil {
		s.logger.Errorw("failed to save configuration", "error", err)
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}
