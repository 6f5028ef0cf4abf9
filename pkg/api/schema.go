package api

import (
	"github.com/invopop/jsonschema"
)

// Schemas возвращает JSON Schema протокола по имени файла без расширения
func Schemas() map[string]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	client := reflector.Reflect(new(ClientCommand))
	client.Title = "Photo hunt client command"
	client.Description = "Message a client sends over the websocket: move, take_picture or select_level."

	server := reflector.Reflect(new(ServerResponse))
	server.Title = "Photo hunt server message"
	server.Description = "Message the server sends; the action field tells which fields are set."

	return map[string]*jsonschema.Schema{
		"client_command":  client,
		"server_response": server,
	}
}
