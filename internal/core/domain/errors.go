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

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNullArgument    = errors.New("required argument is not set")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNullLocale is also an ErrNullArgument.
	ErrNullLocale = fmt.Errorf("%w: locale", ErrNullArgument)
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNullArgument    ErrorKind = "null_argument"
	KindDuplicateKey    ErrorKind = "duplicate_key"
	KindNotFound        ErrorKind = "not_found"
	KindInvalidState    ErrorKind = "invalid_state"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindNullLocale      ErrorKind = "null_locale"
)

var kindSentinels = map[ErrorKind]error{
	KindNullArgument:    ErrNullArgument,
	KindDuplicateKey:    ErrDuplicateKey,
	KindNotFound:        ErrNotFound,
	KindInvalidState:    ErrInvalidState,
	KindInvalidArgument: ErrInvalidArgument,
	KindNullLocale:      ErrNullLocale,
}

// ConfigError reports a contract violation raised by a Configuration
// operation. It unwraps to the sentinel matching its Kind.
type ConfigError struct {
	Op   string
	Kind ErrorKind
	URL  string // Optional: server the operation targeted
	Msg  string
}

func newError(op string, kind ErrorKind, url, msg string) *ConfigError {
	return &ConfigError{Op: op, Kind: kind, URL: url, Msg: msg}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.URL != "" {
		base += fmt.Sprintf(" (url=%s)", e.URL)
	}
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	return base
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return kindSentinels[e.Kind]
}

// IsKind helps callers classify errors without depending on the concrete type.
func IsKind(err error, kind ErrorKind) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
