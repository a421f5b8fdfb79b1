// meta/meta.go
package meta

// MAX_TURNS caps the length of a game played by the engine.
const MAX_TURNS = 300

// DEFAULT_PORT is the first TCP port tried by a network peer.
const DEFAULT_PORT = 23412

// PORT_RANGE is the number of consecutive ports tried by a network peer.
const PORT_RANGE = 5

// SERVER_ADDR is the default address of the spectator server.
const SERVER_ADDR = ":8080"

// AGENT_ADDR is the default address of the agent server.
const AGENT_ADDR = ":8081"
