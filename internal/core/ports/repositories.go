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

// ConfigRepository stores the persisted snapshot of the configuration.
type ConfigRepository interface {
	Load() (domain.ConfigData, error)
	Save(data domain.ConfigData) error
}

// TunnelResolver looks up SSH jump host parameters by host alias.
type TunnelResolver interface {
	Resolve(alias string) (domain.SSHTunnelConfiguration, error)
}
