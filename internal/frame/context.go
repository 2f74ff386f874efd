// Package frame models the context object a Farcaster mini-app host hands
// to the embedded app, and the host implementations used by the binaries.
package frame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrNoContext is returned by a host that was started outside a frame.
var ErrNoContext = errors.New("not in frame context")

// Context is the host-provided frame context.
type Context struct {
	User   *User   `json:"user,omitempty"`
	Client *Client `json:"client,omitempty"`
}

// User describes the viewer. Some hosts wrap the user object inside itself
// under the same field name, so User may carry a nested copy.
type User struct {
	FID         int64  `json:"fid"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PfpURL      string `json:"pfpUrl,omitempty"`
	User        *User  `json:"user,omitempty"`
}

// Client describes the host client.
type Client struct {
	ClientFID int64 `json:"clientFid"`
	Added     bool  `json:"added"`
}

// Decode reads a frame context JSON document.
func Decode(r io.Reader) (*Context, error) {
	var fc Context
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decoding frame context: %w", err)
	}
	return &fc, nil
}

// LoadFile reads a frame context JSON document from disk.
func LoadFile(path string) (*Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening frame context: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// StaticHost serves a context captured up front, e.g. from a request body
// or a file. A zero StaticHost behaves like running outside a frame.
type StaticHost struct {
	Frame *Context
	Err   error

	readyCalls int
}

// Context implements identity.Host.
func (h *StaticHost) Context(_ context.Context) (*Context, error) {
	if h.Err != nil {
		return nil, h.Err
	}
	return h.Frame, nil
}

// Ready implements identity.Host.
func (h *StaticHost) Ready(_ context.Context) error {
	h.readyCalls++
	return nil
}

// ReadyCalls reports how many times Ready was signalled.
func (h *StaticHost) ReadyCalls() int {
	return h.readyCalls
}
