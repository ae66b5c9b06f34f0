// Package commands defines the chatvault CLI and wires dependencies for subcommands.
//
// Commands
//
//   - room create|show|delete|password   Manage chat-room records
//   - member add|list|show|remove         Edit a room's roster
//   - roomid new|check                    Generate or validate room ids
//   - key derive                          Print the storage key of (wallet, room id)
//   - secret new                          Generate a random room password
//
// # Implementation
//
// The root command loads configuration (flags, CHATVAULT_* environment,
// chatvault.yaml) before any subcommand runs. Storage is opened lazily, so the
// identifier helpers work without a passphrase or a reachable backend.
package commands
