package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/tuyetlangsa/rehi-go/internal/flagx"
	"github.com/tuyetlangsa/rehi-go/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "10s"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	DatabasePath       string         `json:"database_path"`
	ListenAddr         string         `json:"listen_addr"`
	RemoteEndpointAddr string         `json:"remote_endpoint_addr"`
	RemoteAuthToken    string         `json:"remote_auth_token"`
	RemoteTimeout      timex.Duration `json:"remote_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when absent, nothing is loaded.
// Empty JSON fields leave the existing value untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ListenAddr != "" {
		cfg.ListenAddr = jc.ListenAddr
	}
	if jc.RemoteEndpointAddr != "" {
		cfg.RemoteEndpointAddr = jc.RemoteEndpointAddr
	}
	if jc.RemoteAuthToken != "" {
		cfg.RemoteAuthToken = jc.RemoteAuthToken
	}
	if jc.RemoteTimeout.Duration != 0 {
		cfg.RemoteTimeout = time.Duration(jc.RemoteTimeout.Duration)
	}
}
