// Package notify_test provides mock implementations for sender testing.
// Related: internal/notify/sender.go
// Tags: notify, mocks, testing

package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ariel-frischer/tasknotify/internal/config"
)

// MockSender is a mock implementation of Sender for testing.
// It records all method calls and allows configuring return values.
type MockSender struct {
	mu sync.Mutex

	// Configuration
	cfg      config.ChannelConfig
	Response string
	SendErr  error
	PlanText string

	// Call tracking
	SendCalls   []Message
	PlanCalls   []Message
	LastContext context.Context
}

// NewMockSender creates a mock sender backed by a valid Bark configuration
func NewMockSender() *MockSender {
	return &MockSender{
		cfg: &config.BarkConfig{
			MachineName: "mock-device",
			BaseURL:     config.DefaultBarkBaseURL,
			Key:         "mock-key",
			Timeout:     time.Second,
		},
		PlanText: "PLAN\n",
	}
}

// WithResponse configures the response text returned by Send
func (m *MockSender) WithResponse(response string) *MockSender {
	m.Response = response
	return m
}

// WithSendError configures the mock to fail on Send
func (m *MockSender) WithSendError(err error) *MockSender {
	m.SendErr = err
	return m
}

// Config returns the configured channel configuration
func (m *MockSender) Config() config.ChannelConfig {
	return m.cfg
}

// Plan records the call and returns the configured plan text
func (m *MockSender) Plan(msg Message) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PlanCalls = append(m.PlanCalls, msg)
	return m.PlanText
}

// Send records the call and returns the configured response or error
func (m *MockSender) Send(ctx context.Context, msg Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SendCalls = append(m.SendCalls, msg)
	m.LastContext = ctx
	if m.SendErr != nil {
		return "", m.SendErr
	}
	return m.Response, nil
}

// SendCount returns how many times Send was called
func (m *MockSender) SendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SendCalls)
}

// Common test errors
var ErrMockTransport = errors.New("mock transport error")
