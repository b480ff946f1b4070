// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/stage-rate/auth"
	"github.com/danielhkuo/stage-rate/cliparse"
	"github.com/danielhkuo/stage-rate/models"
	"github.com/danielhkuo/stage-rate/registry"
	"github.com/danielhkuo/stage-rate/store"
)

// GetTestConfig returns a standard test configuration backed by the in-memory
// store, so handler tests need no external database.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		StoreType:     cliparse.StoreMemory,
		AccessKeySalt: "test-access-salt",
		SweepInterval: time.Second,
	}
}

// SetupRegistry creates a registry over a fresh in-memory store.
func SetupRegistry(t *testing.T) (*registry.Registry, *store.MemStore) {
	t.Helper()
	st := store.NewMemStore()
	t.Cleanup(func() { st.Close() })
	return registry.New(st), st
}

// AdminKey derives the admin access key for a test configuration.
func AdminKey(cfg cliparse.Config) string {
	return auth.GenerateAccessKey(auth.RoleAdmin, cfg.AccessKeySalt)
}

// JudgeKey derives the access key for a judge slot.
func JudgeKey(cfg cliparse.Config, slot string) string {
	return auth.GenerateAccessKey(auth.JudgeRole(slot), cfg.AccessKeySalt)
}

// CreateTestPoll creates a poll through the registry and optionally opens its
// voting window.
func CreateTestPoll(t *testing.T, reg *registry.Registry, question, category string, active bool) models.Poll {
	t.Helper()

	p, err := reg.CreatePoll(context.Background(), question, category, 60)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	if active {
		if err := reg.StartVoting(context.Background(), p.ID); err != nil {
			t.Fatalf("Failed to start test poll: %v", err)
		}
		p, err = reg.GetPoll(context.Background(), p.ID)
		if err != nil {
			t.Fatalf("Failed to reload test poll: %v", err)
		}
	}

	return p
}

// RegisterTestDevice registers a device and returns its internal ID.
func RegisterTestDevice(t *testing.T, st store.Store, deviceUUID string) string {
	t.Helper()

	id, _, err := st.RegisterDevice(context.Background(), deviceUUID, models.PlatformWeb)
	if err != nil {
		t.Fatalf("Failed to register test device: %v", err)
	}
	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
