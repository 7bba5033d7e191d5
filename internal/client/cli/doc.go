// Package cli provides the interactive gophauth command-line client.
//
// It wires configuration, the HTTP API client and a REPL. A background
// watcher pings the server and flips the prompt between online and offline.
//
// Commands:
//   - signup / signin (aliases: register / login)
//   - me: show the signed-in account
//   - logout: forget the access token
//   - help, exit
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
