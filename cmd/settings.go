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
	"io"
	"strconv"

	"github.com/Adembc/lazyzoo/internal/core/domain"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

func newFontCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "font", Short: "Font settings"}
	cmd.AddCommand(&cobra.Command{
		Use:   "set SIZE",
		Short: fmt.Sprintf("Set the font size (%d-%d)", domain.MinFontSize, domain.MaxFontSize),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid font size %q", args[0])
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			return svc.UpdateFont(domain.FontConfiguration{Size: size})
		},
	})
	return cmd
}

func newLocaleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "locale", Short: "Locale settings"}
	cmd.AddCommand(&cobra.Command{
		Use:   "set TAG",
		Short: "Set the UI locale as a BCP 47 tag, e.g. en-US or zh-CN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid locale %q: %w", args[0], err)
			}
			svc, err := a.service()
			if err != nil {
				return err
			}
			return svc.UpdateLocale(domain.LocaleConfiguration{Locale: tag})
		},
	})
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the whole configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			data := svc.Snapshot()
			for i := range data.Servers {
				data.Servers[i] = maskPassword(data.Servers[i])
			}
			return writeYAML(cmd.OutOrStdout(), data)
		},
	}
}

const maskedPassword = "********"

// maskPassword hides the tunnel password in printed output. The stored file
// keeps the real value.
func maskPassword(s domain.ServerConfigData) domain.ServerConfigData {
	if s.SSHTunnel != nil && s.SSHTunnel.Password != "" {
		tunnel := *s.SSHTunnel
		tunnel.Password = maskedPassword
		s.SSHTunnel = &tunnel
	}
	return s
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
