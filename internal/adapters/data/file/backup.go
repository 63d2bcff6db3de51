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
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// createBackup copies the current config file aside and prunes all but the
// newest MaxBackups copies.
func (r *configRepo) createBackup() error {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check if config file exists: %w", err)
	}

	backupPath := fmt.Sprintf("%s-%d-%s", r.filePath, time.Now().UnixNano(), BackupSuffix)
	if err := r.copyFile(r.filePath, backupPath); err != nil {
		return fmt.Errorf("failed to copy config to backup: %w", err)
	}
	r.logger.Debugf("Created backup: %s", backupPath)

	dir := filepath.Dir(r.filePath)
	backups, err := r.findBackupFiles(dir)
	if err != nil {
		return err
	}
	if len(backups) <= MaxBackups {
		return nil
	}

	// Names embed the timestamp, so the newest sort last.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	for _, name := range backups[MaxBackups:] {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil {
			r.logger.Warnf("failed to remove old backup %s: %v", path, err)
			continue
		}
		r.logger.Debugf("Removed old backup: %s", path)
	}
	return nil
}

func (r *configRepo) copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := srcFile.Close(); cerr != nil {
			r.logger.Warnf("failed to close source file %s: %v", src, cerr)
		}
	}()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, ConfigFilePerms)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := destFile.Close(); cerr != nil {
			r.logger.Warnf("failed to close destination file %s: %v", dst, cerr)
		}
	}()

	if _, err := io.Copy(destFile, srcFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// findBackupFiles lists backups belonging to this repository's file.
func (r *configRepo) findBackupFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	prefix := filepath.Base(r.filePath) + "-"
	var backups []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, BackupSuffix) {
			backups = append(backups, name)
		}
	}
	return backups, nil
}
