// Copyright 2025 Blink Labs Software
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

package tx

import (
	"fmt"
)

type MetadataTooLongError struct {
	Label uint64
	Kind  string
	Size  int
}

func (e MetadataTooLongError) Error() string {
	return fmt.Sprintf(
		"metadata label %d: %s exceeds %d byte limit: %d bytes",
		e.Label,
		e.Kind,
		MaxMetadataStringSize,
		e.Size,
	)
}

type MetadataDepthError struct {
	Label uint64
}

func (e MetadataDepthError) Error() string {
	return fmt.Sprintf(
		"metadata label %d: nesting depth exceeds maximum of %d",
		e.Label,
		maxMetadataDepth,
	)
}

type InvalidOutputError struct {
	Address string
	Err     error
}

func (e InvalidOutputError) Error() string {
	return fmt.Sprintf("invalid output address %q: %s", e.Address, e.Err)
}

func (e InvalidOutputError) Unwrap() error {
	return e.Err
}
