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


package storage

import "errors"

var (
	// ErrNotFound is returned when a requested entry doesn't exist.
	ErrNotFound = errors.New("entry not found")

	// ErrStorageClosed is returned when operations are attempted on a closed backend.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed is returned when an entry cannot be
	// serialized or deserialized.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrInvalidKey is returned when a key cannot be parsed or is malformed.
	ErrInvalidKey = errors.New("invalid key")
)
