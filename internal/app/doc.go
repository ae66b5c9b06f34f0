// Package app wires application dependencies for the CLI.
//
// It loads Config with viper (file, .env and CHATVAULT_* environment), opens
// the configured record backend, optionally instruments it, and exposes the
// chat-room service via the Wire struct for commands to use.
package app
