// Package ws wraps a single persistent websocket connection to the
// exchange: one read loop feeding a buffered frame channel, serialized
// writes with deadlines, and an application-level ping keepalive.
//
// Reconnection policy lives one layer up, in package stream; a Conn
// represents exactly one connection lifetime.
package ws
