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

package test_campaign

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"

	"github.com/blinklabs-io/velocity/campaign"
)

// Request is a request received by the fake campaign API
type Request struct {
	Method string
	Path   string
	Query  url.Values
	ApiKey string
	Body   []byte
	// Form holds multipart fields, including the uploaded file contents under "file"
	Form map[string]string
}

// Server is an in-memory campaign API for tests
type Server struct {
	*httptest.Server

	mutex            sync.Mutex
	checkStatusCode  int
	config           *campaign.Config
	status           *campaign.Status
	quoteStatusCode  int
	quote            *campaign.Quote
	quoteMessage     string
	snapshotStatus   int
	snapshot         json.RawMessage
	item             json.RawMessage
	leaderboard      json.RawMessage
	activity         json.RawMessage
	userDefinedInput campaign.UserDefinedInputResult
	requests         []Request
}

// NewServer starts a fake campaign API. Callers must Close it
func NewServer() *Server {
	s := &Server{
		checkStatusCode: http.StatusOK,
		quoteStatusCode: http.StatusOK,
		snapshotStatus:  http.StatusOK,
		snapshot:        json.RawMessage(`{"items":[],"total":0}`),
		item:            json.RawMessage(`{"id":"item-1"}`),
		leaderboard:     json.RawMessage(`[]`),
		activity:        json.RawMessage(`[]`),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /campaign/{key}/check/{stakeKey}", s.handleCheck)
	mux.HandleFunc("POST /campaign/{key}/quote", s.handleQuote)
	mux.HandleFunc("POST /campaign/{key}/setUserDefinedInput", s.handleSetUserDefinedInput)
	mux.HandleFunc("POST /campaign/{key}/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /campaign/{key}/item/{itemId}", s.handleRaw(func() json.RawMessage { return s.item }))
	mux.HandleFunc("GET /leaderboard", s.handleRaw(func() json.RawMessage { return s.leaderboard }))
	mux.HandleFunc("GET /activity", s.handleRaw(func() json.RawMessage { return s.activity }))
	mux.HandleFunc("GET /activity/{stakeKey}", s.handleRaw(func() json.RawMessage { return s.activity }))
	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// SetCheck configures the check response
func (s *Server) SetCheck(statusCode int, config *campaign.Config, status *campaign.Status) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.checkStatusCode = statusCode
	s.config = config
	s.status = status
}

// SetQuote configures the quote response. The message is returned for
// non-OK status codes
func (s *Server) SetQuote(statusCode int, quote *campaign.Quote, message string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.quoteStatusCode = statusCode
	s.quote = quote
	s.quoteMessage = message
}

func (s *Server) SetSnapshot(statusCode int, snapshot json.RawMessage) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.snapshotStatus = statusCode
	s.snapshot = snapshot
}

func (s *Server) SetLeaderboard(data json.RawMessage) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.leaderboard = data
}

func (s *Server) SetActivity(data json.RawMessage) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.activity = data
}

func (s *Server) SetUserDefinedInputResult(result campaign.UserDefinedInputResult) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.userDefinedInput = result
}

// Requests returns the received requests in order
func (s *Server) Requests() []Request {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return slices.Clone(s.requests)
}

// LastRequest returns the most recent request
func (s *Server) LastRequest() Request {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tmpReq := Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			ApiKey: r.Header.Get(campaign.ApiKeyHeader),
		}
		if r.Header.Get("Content-Type") == "application/json" {
			tmpReq.Body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(tmpReq.Body))
		} else if r.Method == http.MethodPost {
			if err := r.ParseMultipartForm(1 << 20); err == nil {
				tmpReq.Form = make(map[string]string)
				for k, v := range r.MultipartForm.Value {
					tmpReq.Form[k] = v[0]
				}
				if files := r.MultipartForm.File["file"]; len(files) > 0 {
					if f, err := files[0].Open(); err == nil {
						data, _ := io.ReadAll(f)
						f.Close()
						tmpReq.Form["file"] = string(data)
					}
				}
			}
		}
		s.mutex.Lock()
		s.requests = append(s.requests, tmpReq)
		s.mutex.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	statusCode := s.checkStatusCode
	body := map[string]any{}
	if s.config != nil {
		body["config"] = s.config
	}
	if s.status != nil {
		body["status"] = s.status
	}
	s.mutex.Unlock()
	writeJSON(w, statusCode, body)
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	statusCode := s.quoteStatusCode
	quote := s.quote
	message := s.quoteMessage
	s.mutex.Unlock()
	if statusCode != http.StatusOK {
		writeJSON(w, statusCode, map[string]string{"message": message})
		return
	}
	writeJSON(w, statusCode, quote)
}

func (s *Server) handleSetUserDefinedInput(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	result := s.userDefinedInput
	s.mutex.Unlock()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mutex.Lock()
	statusCode := s.snapshotStatus
	data := s.snapshot
	s.mutex.Unlock()
	if statusCode != http.StatusOK {
		writeJSON(w, statusCode, map[string]string{"message": "snapshot unavailable"})
		return
	}
	writeJSON(w, statusCode, data)
}

func (s *Server) handleRaw(data func() json.RawMessage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mutex.Lock()
		tmpData := data()
		s.mutex.Unlock()
		writeJSON(w, http.StatusOK, tmpData)
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
