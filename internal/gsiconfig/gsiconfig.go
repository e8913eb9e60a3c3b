// Package gsiconfig generates the gamestate_integration cfg file the
// Dota 2 client reads to know where to push telemetry.
package gsiconfig

import (
	"fmt"
	"os"
	"path/filepath"
)

const template = `"Dota 2 Integration Configuration"
{
    "uri"           "http://%s:%d/"
    "timeout"       "5.0"
    "heartbeat"     "30.0"
    "auth"
    {
        "token"      "%s"
    }
    "data"
    {
        "provider"      "1"
        "map"           "1"
        "player"        "1"
        "hero"          "1"
        "abilities"     "1"
        "items"         "1"
        "buildings"     "1"
        "draft"         "1"
        "minimap"       "1"
    }
}
`

// Write renders the integration file for the given endpoint and writes
// it to path (normally inside the game's cfg/gamestate_integration
// directory), creating parent directories as needed.
func Write(path, host string, port int, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating cfg directory: %w", err)
	}

	content := fmt.Sprintf(template, host, port, token)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing cfg file: %w", err)
	}
	return nil
}
