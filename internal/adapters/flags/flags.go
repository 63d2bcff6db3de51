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

package flags

import (
	"github.com/Adembc/lazyzoo/internal/core/ports"

	"github.com/spf13/cobra"
)

type CobraFlags struct {
	rootCmd *cobra.Command
}

func NewCobraFlags(rootCmd *cobra.Command) ports.FlagsProvider {
	g := &CobraFlags{rootCmd: rootCmd}
	g.globalFlags()
	return g
}

// globalFlags registers flags shared by every subcommand.
func (g *CobraFlags) globalFlags() {
	g.rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	g.rootCmd.PersistentFlags().String("config-dir", "", "Config directory path (default: ~/.lazyzoo)")
}

func (c *CobraFlags) IsDebug() bool {
	flag, _ := c.rootCmd.PersistentFlags().GetBool("debug")
	return flag
}

func (c *CobraFlags) GetFlag(name string) string {
	value, _ := c.rootCmd.PersistentFlags().GetString(name)
	return value
}
