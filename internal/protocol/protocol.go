package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/kilnhq/kilnd/internal/manifest"
)

// A command name carried in an envelope.
type Command string

// Commands understood by the daemon, plus the two response commands it
// emits.
const (
	CmdBuild    Command = "build"
	CmdStatus   Command = "status"
	CmdShutdown Command = "shutdown"

	CmdOK    Command = "ok"
	CmdError Command = "error"
)

// Wraps every message on the wire: one command and its payload.
type Envelope struct {
	Command Command         `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Asks the daemon to execute one build.
type BuildRequest struct {
	Plan      *manifest.Plan `json:"plan"`                // Build plan, sent inline.
	Root      string         `json:"root"`                // Directory the plan's relative paths resolve against.
	Output    string         `json:"output"`              // Directory for the exported image.
	Platforms []string       `json:"platforms,omitempty"` // Overrides the plan's platforms when set.
	NoCache   bool           `json:"no_cache,omitempty"`  // Bypass the dependency-layer cache.
}

// Reports a completed build.
type BuildResult struct {
	Output string `json:"output"` // Directory containing the exported image.
}

// Reports daemon health.
type StatusResult struct {
	Running bool   `json:"running"`
	Version string `json:"version"`
	Pid     int    `json:"pid"`
	Uptime  string `json:"uptime"`
	Builds  int    `json:"builds"`
}

// Carries a failure message back to the client.
type ErrorResult struct {
	Message string `json:"message"`
}

// Serializes a command and payload into an envelope.
func Encode(cmd Command, payload any) ([]byte, error) {
	env := Envelope{Command: cmd}

	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncode, err)
		}
		env.Payload = raw
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return data, nil
}

// Parses an envelope, returning the command and the raw payload for the
// caller to decode with [DecodePayload].
func Decode(data []byte) (Envelope, json.RawMessage, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Envelope{}, nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if env.Command == "" {
		return Envelope{}, nil, fmt.Errorf("%w: missing command", ErrDecode)
	}
	return env, env.Payload, nil
}

// Decodes a raw payload into a typed value.
func DecodePayload[T any](payload json.RawMessage) (*T, error) {
	var v T
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: missing payload", ErrDecode)
	}
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &v, nil
}
