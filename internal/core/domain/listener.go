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

// ChangeListener is notified synchronously of every structural change of a
// Configuration. Each call receives its own copy of the data; listeners may
// keep or modify it freely.
type ChangeListener interface {
	OnReload(servers []ServerConfigData)
	OnServerAdd(server ServerConfigData)
	OnServerChange(server ServerConfigData)
	OnServerRemove(server ServerConfigData)
}
