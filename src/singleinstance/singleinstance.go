package singleinstance

// This file defines the API for single-instance ownership and delegation of
// commands to the resident process.

import (
	"context"
	"fmt"
	"strings"
)

// Command is the action a second launch asks the resident to perform.
type Command string

const (
	CommandCapture Command = "CAPTURE"
	CommandShow    Command = "SHOW"
)

// ParseCommand maps a request line to a known command.
func ParseCommand(line string) (Command, error) {
	switch c := Command(strings.TrimSpace(line)); c {
	case CommandCapture, CommandShow:
		return c, nil
	default:
		return "", fmt.Errorf("unknown command %q", strings.TrimSpace(line))
	}
}

// Server owns the TCP endpoint and answers delegated commands.
type Server interface {
	// Start begins listening on the first free port of the configured range.
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Next returns the next accepted connection as a Conn, or ctx error.
	Next(ctx context.Context) (Conn, error)
	// Close releases ownership and stops accepting clients.
	Close() error
}

// Conn represents one client connection and exposes request + response API.
type Conn interface {
	// Request returns the parsed client request.
	Request() Request
	// RespondSuccess sends OK with an optional payload, e.g. a saved path.
	RespondSuccess(text string) error
	// RespondError sends an error with human-readable message.
	RespondError(msg string) error
	// Close closes the underlying connection.
	Close() error
}

// Request represents a single delegated command.
type Request struct {
	Command Command
}

// Client attempts to hand a command to a resident server.
type Client interface {
	// Delegate scans the port range, performs the handshake and sends cmd.
	// If no resident is found, returns delegated=false, err=nil.
	Delegate(ctx context.Context, cmd Command) (delegated bool, text string, err error)
}

// NewServer returns TCP implementation.
func NewServer() Server { return newTcpServer() }

// NewClient returns TCP implementation.
func NewClient() Client { return newTcpClient() }
