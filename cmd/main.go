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

package main

import (
	"fmt"
	"os"

	"github.com/Adembc/lazyzoo/internal/adapters/config"
	"github.com/Adembc/lazyzoo/internal/adapters/data/file"
	"github.com/Adembc/lazyzoo/internal/adapters/data/sshconfig"
	"github.com/Adembc/lazyzoo/internal/adapters/flags"
	"github.com/Adembc/lazyzoo/internal/adapters/logger"
	"github.com/Adembc/lazyzoo/internal/adapters/ui"
	"github.com/Adembc/lazyzoo/internal/core/domain"
	"github.com/Adembc/lazyzoo/internal/core/ports"
	"github.com/Adembc/lazyzoo/internal/core/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version   = "develop"
	gitCommit = "unknown"
)

// app holds what every command needs once flags are parsed.
type app struct {
	flags ports.FlagsProvider
	paths *config.OSConfig
	log   *zap.SugaredLogger
}

func (a *app) setup(*cobra.Command, []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}
	a.paths = config.NewOSConfigWithDir(home, a.flags.GetFlag("config-dir"))

	a.log, err = logger.New("LAZYZOO", a.paths.LogPath("lazyzoo.log"), a.flags.IsDebug())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	return nil
}

// service builds the configuration service; listeners get the initial reload.
func (a *app) service(listeners ...domain.ChangeListener) (ports.ConfigurationService, error) {
	repo := file.NewConfigRepo(a.log, a.paths.ConfigPath("lazyzoo.yaml"))
	resolver := sshconfig.NewResolver(a.log, a.paths.SSHConfigPath())
	svc, err := services.NewConfigurationService(a.log, repo, resolver, listeners...)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:               ui.AppName,
		Short:             "ZooKeeper connection profile manager",
		Version:           fmt.Sprintf("%s (%s)", version, gitCommit),
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverList := ui.NewServerList()
			svc, err := a.service(serverList)
			if err != nil {
				return err
			}
			return ui.NewTUI(a.log, svc, serverList, version, gitCommit).Run()
		},
	}
	rootCmd.SilenceUsage = true
	a.flags = flags.NewCobraFlags(rootCmd)

	rootCmd.AddCommand(newServerCmd(a), newFontCmd(a), newLocaleCmd(a), newExportCmd(a))
	return rootCmd, a
}

func main() {
	rootCmd, a := newRootCmd()
	err := rootCmd.Execute()
	if a.log != nil {
		//nolint:errcheck // log.Sync may return an error which is safe to ignore here
		a.log.Sync()
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
