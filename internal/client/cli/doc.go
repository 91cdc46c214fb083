// Package cli provides the interactive Socrates terminal client.
//
// App wires configuration, the local token store, the API client, the
// session store and the location router. App.Root restores a stored
// session, starts a background connectivity watcher and runs the REPL.
// Every REPL command either changes the location, acts on the mounted
// screen, or prompts for input; the mounted screen is rendered after each
// command. See runREPL for the command table.
package cli
