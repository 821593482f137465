// Copyright 2025 Poiesic Systems
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


package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingSettings indicates that one or more required settings are unset.
	ErrMissingSettings = errors.New("missing required settings")

	// ErrInvalidValue indicates that a setting is out of range or unparsable.
	ErrInvalidValue = errors.New("invalid setting value")

	// ErrUnsupportedFormat indicates a config file extension that is not recognized.
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

// MissingSettingsError lists every required setting that is unset.
type MissingSettingsError struct {
	Names []string
}

func (e *MissingSettingsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingSettings, strings.Join(e.Names, ", "))
}

func (e *MissingSettingsError) Unwrap() error {
	return ErrMissingSettings
}
