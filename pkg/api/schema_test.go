package api

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSchemas(t *testing.T) {
	schemas := Schemas()

	client, ok := schemas["client_command"]
	if !ok {
		t.Fatal("client_command schema missing")
	}
	data, err := json.Marshal(client)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"take_picture"`, `"select_level"`, `"RIGHT"`, `"action"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("client schema has no %s", want)
		}
	}

	server, ok := schemas["server_response"]
	if !ok {
		t.Fatal("server_response schema missing")
	}
	data, err = json.Marshal(server)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"time_left"`, `"session_id"`, `"creatures"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("server schema has no %s", want)
		}
	}
}
