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

	"github.com/Adembc/lazyzoo/internal/adapters/ui"
	"github.com/Adembc/lazyzoo/internal/core/domain"
	"github.com/Adembc/lazyzoo/internal/core/ports"
	"github.com/spf13/cobra"
)

// serverOptions are the flags shared by "server add" and "server update".
type serverOptions struct {
	url, host, alias string
	port             int
	acl              []string
	tunnel           bool
	sshConfigHost    string
	t                domain.SSHTunnelConfiguration
}

func (o *serverOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.url, "url", "", "Server URL, the unique key (required)")
	f.StringVar(&o.host, "host", "", "ZooKeeper host (required)")
	f.IntVar(&o.port, "port", 2181, "ZooKeeper port")
	f.StringVar(&o.alias, "alias", "", "Display name")
	f.StringSliceVar(&o.acl, "acl", nil, "ACL entries, e.g. digest:user:password")
	f.BoolVar(&o.tunnel, "ssh-tunnel", false, "Connect through an SSH tunnel")
	f.StringVar(&o.sshConfigHost, "ssh-config-host", "", "Fill the tunnel from this ~/.ssh/config Host entry")
	f.StringVar(&o.t.Localhost, "local-host", "127.0.0.1", "Tunnel local bind address")
	f.IntVar(&o.t.LocalPort, "local-port", 0, "Tunnel local port")
	f.StringVar(&o.t.SSHHost, "ssh-host", "", "SSH jump host")
	f.IntVar(&o.t.SSHPort, "ssh-port", 22, "SSH jump host port")
	f.StringVar(&o.t.SSHUsername, "ssh-user", "", "SSH user")
	f.StringVar(&o.t.SSHPassword, "ssh-password", "", "SSH password")
	f.StringVar(&o.t.RemoteHost, "remote-host", "", "Host to reach from the jump host")
	f.IntVar(&o.t.RemotePort, "remote-port", 0, "Port to reach from the jump host")
	_ = cmd.MarkFlagRequired("url")
}

func (o *serverOptions) server(cmd *cobra.Command, svc ports.ConfigurationService) (domain.ServerConfiguration, error) {
	server := domain.ServerConfiguration{
		URL:              o.url,
		Host:             o.host,
		Port:             o.port,
		Alias:            o.alias,
		ACLList:          o.acl,
		SSHTunnelEnabled: o.tunnel,
	}

	tunnel := o.t
	if o.sshConfigHost != "" {
		resolved, err := svc.ImportTunnel(o.sshConfigHost)
		if err != nil {
			return domain.ServerConfiguration{}, err
		}
		tunnel.SSHHost, tunnel.SSHPort, tunnel.SSHUsername = resolved.SSHHost, resolved.SSHPort, resolved.SSHUsername
		if resolved.Localhost != "" && !cmd.Flags().Changed("local-port") {
			tunnel.Localhost, tunnel.LocalPort = resolved.Localhost, resolved.LocalPort
		}
		if resolved.RemoteHost != "" && !cmd.Flags().Changed("remote-host") {
			tunnel.RemoteHost, tunnel.RemotePort = resolved.RemoteHost, resolved.RemotePort
		}
	}
	if tunnel.SSHHost != "" {
		server.SSHTunnel = &tunnel
	}
	return server, nil
}

func newServerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Manage server connection profiles",
	}
	cmd.AddCommand(
		newServerListCmd(a),
		newServerGetCmd(a),
		newServerWriteCmd(a, "add", "added", "Add a server", ports.ConfigurationService.AddServer),
		newServerWriteCmd(a, "update", "updated", "Replace the settings of a server", ports.ConfigurationService.UpdateServer),
		newServerDeleteCmd(a),
		newServerConnectCmd(a),
	)
	return cmd
}

func newServerListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "List servers, optionally filtered by url, host or alias",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			for _, s := range svc.ListServers(query) {
				fmt.Fprintln(cmd.OutOrStdout(), ui.FormatServerLine(domain.ToServerConfigData(s)))
			}
			return nil
		},
	}
}

func newServerGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get URL",
		Short: "Show one server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			server, ok := svc.GetServer(args[0])
			if !ok {
				return fmt.Errorf("server '%s' not found", args[0])
			}
			return writeYAML(cmd.OutOrStdout(), maskPassword(domain.ToServerConfigData(server)))
		},
	}
}

func newServerWriteCmd(a *app, use, done, short string,
	write func(ports.ConfigurationService, domain.ServerConfiguration) error,
) *cobra.Command {
	opts := &serverOptions{}
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			server, err := opts.server(cmd, svc)
			if err != nil {
				return err
			}
			if err := write(svc, server); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", done, server.URL)
			return nil
		},
	}
	opts.register(cmd)
	return cmd
}

func newServerDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm URL",
		Aliases: []string{"delete"},
		Short:   "Delete a server",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			if err := svc.DeleteServer(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newServerConnectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "connect URL",
		Short: "Record a connection to a server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service()
			if err != nil {
				return err
			}
			return svc.RecordConnect(args[0])
		},
	}
}
