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

package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Adembc/lazyzoo/internal/core/domain"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	MaxBackups      = 10
	TempSuffix      = ".tmp"
	BackupSuffix    = "lazyzoo.backup"
	ConfigFilePerms = 0o600

	DefaultFontSize = 14
	DefaultLang     = "en"
)

type configRepo struct {
	filePath string
	logger   *zap.SugaredLogger
}

// NewConfigRepo returns a repository that keeps the configuration snapshot
// as YAML at filePath.
func NewConfigRepo(logger *zap.SugaredLogger, filePath string) *configRepo {
	return &configRepo{filePath: filePath, logger: logger}
}

// DefaultConfigData is used when no configuration file exists yet.
func DefaultConfigData() domain.ConfigData {
	return domain.ConfigData{
		Servers: []domain.ServerConfigData{},
		Font:    domain.FontConfigData{Size: DefaultFontSize},
		Locale:  domain.LocaleConfigData{Lang: DefaultLang},
	}
}

func (r *configRepo) Load() (domain.ConfigData, error) {
	data, err := os.ReadFile(r.filePath)
	if os.IsNotExist(err) {
		r.logger.Infow("configuration file not found, using defaults", "path", r.filePath)
		return DefaultConfigData(), nil
	}
	if err != nil {
		return domain.ConfigData{}, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfigData()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return domain.ConfigData{}, fmt.Errorf("failed to parse config file %s: %w", r.filePath, err)
	}
	return config, nil
}

// Save writes data to a temporary file, backs up the current file and then
// renames the temporary file into place.
func (r *configRepo) Save(data domain.ConfigData) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	dir := filepath.Dir(r.filePath)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tempFile := fmt.Sprintf("%s-%s%s", r.filePath, time.Now().Format("20060102150405"), TempSuffix)
	if err := os.WriteFile(tempFile, out, ConfigFilePerms); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	defer func() {
		if removeErr := os.Remove(tempFile); removeErr != nil && !os.IsNotExist(removeErr) {
			r.logger.Warnf("failed to remove temporary file %s: %v", tempFile, removeErr)
		}
	}()

	if err := r.createBackup(); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := os.Rename(tempFile, r.filePath); err != nil {
		return fmt.Errorf("failed to atomically replace config file: %w", err)
	}

	r.logger.Debugw("configuration saved", "path", r.filePath, "servers", len(data.Servers))
	return nil
}
