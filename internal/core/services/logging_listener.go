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
	"github.com/Adembc/lazyzoo/internal/core/domain"
	"go.uber.org/zap"
)

// loggingListener records every configuration change in the application log.
type loggingListener struct {
	logger *zap.SugaredLogger
}

func newLoggingListener(logger *zap.SugaredLogger) *loggingListener {
	return &loggingListener{logger: logger}
}

func (l *loggingListener) OnReload(servers []domain.ServerConfigData) {
	l.logger.Infow("configuration loaded", "servers", len(servers))
}

func (l *loggingListener) OnServerAdd(server domain.ServerConfigData) {
	l.logger.Infow("server added", "url", server.URL, "tunnel", server.SSHTunnelEnabled)
}

func (l *loggingListener) OnServerChange(server domain.ServerConfigData) {
	l.logger.Infow("server changed", "url", server.URL, "tunnel", server.SSHTunnelEnabled)
}

func (l *loggingListener) OnServerRemove(server domain.ServerConfigData) {
	l.logger.Infow("server removed", "url", server.URL, "connect_times", server.ConnectTimes)
}
