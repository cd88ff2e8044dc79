package main

import (
	"context"
	"os"
	"strings"
	"sync/atomic"

	"github.com/hashicorp/go-plugin"

	monitorrpc "tempo/internal/modules/monitor/adapter/out/rpc"
)

// A deterministic monitor used for host integration testing. It cycles
// through a scripted list of focus samples, optionally seeded from
// TEMPO_REFERENCE_SAMPLES (semicolon-separated app|title|dnd triples).
type server struct {
	position atomic.Int64
	script   []monitorrpc.SampleResponse
}

func (s *server) GetMetadata(_ context.Context, _ *monitorrpc.Empty) (*monitorrpc.Metadata, error) {
	return &monitorrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"focus", "dnd"},
	}, nil
}

func (s *server) Sample(_ context.Context, _ *monitorrpc.Empty) (*monitorrpc.SampleResponse, error) {
	pos := int(s.position.Add(1)) - 1
	if pos >= len(s.script) {
		pos = len(s.script) - 1
	}
	sample := s.script[pos]
	return &sample, nil
}

func defaultScript() []monitorrpc.SampleResponse {
	return []monitorrpc.SampleResponse{
		{App: "editor", WindowTitle: "notes.md"},
		{App: "editor", WindowTitle: "notes.md"},
		{App: "browser", WindowTitle: "documentation"},
		{App: "browser", WindowTitle: "documentation", DNDActive: true},
	}
}

func scriptFromEnv(raw string) []monitorrpc.SampleResponse {
	entries := strings.Split(raw, ";")
	script := make([]monitorrpc.SampleResponse, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, "|", 3)
		if len(parts) != 3 {
			continue
		}
		script = append(script, monitorrpc.SampleResponse{
			App:         parts[0],
			WindowTitle: parts[1],
			DNDActive:   parts[2] == "true",
		})
	}
	if len(script) == 0 {
		return defaultScript()
	}
	return script
}

func main() {
	srv := &server{script: defaultScript()}
	if raw := os.Getenv("TEMPO_REFERENCE_SAMPLES"); raw != "" {
		srv.script = scriptFromEnv(raw)
	}
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: monitorrpc.HandshakeConfig,
		Plugins:         monitorrpc.PluginMap(srv),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
