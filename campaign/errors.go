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

package campaign

import (
	"errors"
	"fmt"
	"net/http"
)

const unknownErrorMessage = "Unknown error"

// APIError is a non-success response from the campaign API
type APIError struct {
	StatusCode int
	Message    string
}

func (e APIError) Error() string {
	return fmt.Sprintf("campaign API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// Unprocessable reports whether the server rejected the request as invalid.
// These carry a message meant for the user
func (e APIError) Unprocessable() bool {
	return e.StatusCode == http.StatusUnprocessableEntity
}

// IsUnprocessable reports whether err is an APIError for an invalid request
func IsUnprocessable(err error) bool {
	var apiErr APIError
	return errors.As(err, &apiErr) && apiErr.Unprocessable()
}

type InvalidStakeKeyError struct {
	StakeKey string
	Reason   string
}

func (e InvalidStakeKeyError) Error() string {
	return fmt.Sprintf("invalid stake key %q: %s", e.StakeKey, e.Reason)
}
