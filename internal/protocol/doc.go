// Package protocol defines the wire format between the CLI and the daemon.
//
// Messages are newline-delimited JSON envelopes over a Unix domain socket.
// Each envelope carries a command name and an opaque payload; payloads are
// decoded by the receiver into the request or result type matching the
// command.
package protocol
