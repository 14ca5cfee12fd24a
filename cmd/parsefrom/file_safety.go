//
// Copyright 2025 apstndb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// defaultMaxFileSize is the default maximum input file size (100MB).
const defaultMaxFileSize = 100 * 1024 * 1024

// validateFileSafety checks if a file is safe to read as parser input.
// Devices, pipes and sockets are rejected because they may never end.
func validateFileSafety(fi os.FileInfo, path string, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = defaultMaxFileSize
	}

	if mode := fi.Mode(); !mode.IsRegular() {
		switch {
		case mode.IsDir():
			return fmt.Errorf("cannot read directory %s", path)
		case mode&os.ModeCharDevice != 0:
			return fmt.Errorf("cannot read character device %s", path)
		case mode&os.ModeDevice != 0:
			return fmt.Errorf("cannot read device file %s", path)
		case mode&os.ModeNamedPipe != 0:
			return fmt.Errorf("cannot read named pipe %s", path)
		case mode&os.ModeSocket != 0:
			return fmt.Errorf("cannot read socket file %s", path)
		default:
			return fmt.Errorf("cannot read special file %s (mode: %v)", path, mode)
		}
	}

	if fi.Size() > maxSize {
		return fmt.Errorf("file %s too large: %d bytes (max %d)", path, fi.Size(), maxSize)
	}

	return nil
}

// safeReadFile reads a file from fs after performing safety checks.
func safeReadFile(fs afero.Fs, path string, maxSize int64) ([]byte, error) {
	fi, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	if err := validateFileSafety(fi, path, maxSize); err != nil {
		return nil, err
	}

	return afero.ReadFile(fs, path)
}
