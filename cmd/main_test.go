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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	rootCmd, a := newRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config-dir", dir))
	err := rootCmd.Execute()
	if a.log != nil {
		_ = a.log.Sync()
	}
	return out.String(), err
}

func TestServerCommands(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "server", "add", "--url", "zk://a:2181", "--host", "a", "--alias", "alpha",
		"--acl", "digest:u:p", "--ssh-tunnel", "--ssh-host", "bastion", "--ssh-password", "s3cret",
		"--remote-host", "a", "--remote-port", "2181")
	if err != nil {
		t.Fatalf("server add: %v\n%s", err, out)
	}
	if !strings.Contains(out, "added zk://a:2181") {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := run(t, dir, "server", "add", "--url", "zk://a:2181", "--host", "a"); err == nil {
		t.Fatalf("expected duplicate add to fail")
	}
	if _, err := run(t, dir, "server", "add", "--url", "zk://b:2181", "--host", "b", "--ssh-tunnel"); err == nil {
		t.Fatalf("expected tunnel without ssh host to fail")
	}

	for i := 0; i < 2; i++ {
		if _, err := run(t, dir, "server", "connect", "zk://a:2181"); err != nil {
			t.Fatalf("server connect: %v", err)
		}
	}

	out, err = run(t, dir, "server", "get", "zk://a:2181")
	if err != nil {
		t.Fatalf("server get: %v", err)
	}
	if !strings.Contains(out, "connect_times: 2") || !strings.Contains(out, "ssh_host: bastion") {
		t.Fatalf("unexpected server yaml:\n%s", out)
	}
	if strings.Contains(out, "s3cret") || !strings.Contains(out, maskedPassword) {
		t.Fatalf("password not masked:\n%s", out)
	}

	out, err = run(t, dir, "export")
	if err != nil || strings.Contains(out, "s3cret") {
		t.Fatalf("export leaked password: %v\n%s", err, out)
	}
	stored, err := os.ReadFile(filepath.Join(dir, "lazyzoo.yaml"))
	if err != nil || !strings.Contains(string(stored), "s3cret") {
		t.Fatalf("stored password lost: %v\n%s", err, stored)
	}

	out, err = run(t, dir, "server", "list")
	if err != nil || !strings.Contains(out, "alpha") {
		t.Fatalf("server list: %v\n%s", err, out)
	}

	if _, err := run(t, dir, "server", "rm", "zk://a:2181"); err != nil {
		t.Fatalf("server rm: %v", err)
	}
	if _, err := run(t, dir, "server", "rm", "zk://a:2181"); err == nil {
		t.Fatalf("expected second delete to fail")
	}
}

func TestSettingsAndExport(t *testing.T) {
	dir := t.TempDir()

	if _, err := run(t, dir, "font", "set", "60"); err == nil {
		t.Fatalf("expected out of range font to fail")
	}
	if _, err := run(t, dir, "font", "set", "18"); err != nil {
		t.Fatalf("font set: %v", err)
	}
	if _, err := run(t, dir, "locale", "set", "zh-CN"); err != nil {
		t.Fatalf("locale set: %v", err)
	}

	out, err := run(t, dir, "export")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "size: 18") || !strings.Contains(out, "lang: zh-CN") {
		t.Fatalf("unexpected export:\n%s", out)
	}

	if _, err := os.Stat(filepath.Join(dir, "lazyzoo.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
}
