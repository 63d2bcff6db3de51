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

package ports

import "github.com/Adembc/lazyzoo/internal/core/domain"

type ConfigurationService interface {
	ListServers(query string) []domain.ServerConfiguration
	GetServer(url string) (domain.ServerConfiguration, bool)
	ServerExists(url string) bool
	AddServer(server domain.ServerConfiguration) error
	UpdateServer(server domain.ServerConfiguration) error
	DeleteServer(url string) error
	RecordConnect(url string) error
	UpdateFont(font domain.FontConfiguration) error
	UpdateLocale(locale domain.LocaleConfiguration) error
	ImportTunnel(alias string) (domain.SSHTunnelConfiguration, error)
	Snapshot() domain.ConfigData
}
