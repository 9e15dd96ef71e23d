// Package cli implements the interactive login client: it prompts for an
// email and a password, logs in over gRPC and prints the outcome.
package cli
