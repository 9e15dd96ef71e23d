// Package client talks to the shopkeeper AuthService over gRPC. It keeps
// the session token returned by Login and attaches it to later calls.
package client
