package api

// Названия действий на проводе
const (
	ActionMove         = "move"
	ActionTakePicture  = "take_picture"
	ActionSelectLevel  = "select_level"
	ActionWelcome      = "welcome"
	ActionMoved        = "moved"
	ActionPictureTaken = "picture_taken"
	ActionGameStarted  = "game_started"
	ActionStateUpdate  = "state_update"
	ActionScore        = "score"
)

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это сообщение, которое клиент отправляет серверу.
//
//	{"action":"move","direction":"UP"}
//	{"action":"take_picture"}
//	{"action":"select_level","level":3}
type ClientCommand struct {
	// Action название действия: move, take_picture, select_level.
	Action string `json:"action" msgpack:"action" jsonschema:"enum=move,enum=take_picture,enum=select_level"`

	// Direction нужен только для move.
	Direction string `json:"direction,omitempty" msgpack:"direction,omitempty" jsonschema:"enum=UP,enum=DOWN,enum=LEFT,enum=RIGHT"`

	// Level нужен только для select_level.
	Level int `json:"level,omitempty" msgpack:"level,omitempty"`
}

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Какие поля заполнены, определяется Action.
type ServerResponse struct {
	Action string `json:"action" msgpack:"action"`

	// welcome
	SessionID string `json:"session_id,omitempty" msgpack:"session_id,omitempty"`
	Phase     string `json:"phase,omitempty" msgpack:"phase,omitempty"`

	// game_started и score
	Level int `json:"level,omitempty" msgpack:"level,omitempty"`

	// game_started: раскладка карты, чтобы клиенту не нужна была своя таблица уровней
	Width  int      `json:"width,omitempty" msgpack:"width,omitempty"`
	Height int      `json:"height,omitempty" msgpack:"height,omitempty"`
	Map    []string `json:"map,omitempty" msgpack:"map,omitempty"`

	// state_update
	State *StateUpdate `json:"message,omitempty" msgpack:"message,omitempty"`

	// score: -1 означает, что охотник сфотографировал соперника
	Score *int `json:"score,omitempty" msgpack:"score,omitempty"`
}

// StateUpdate - полный снимок мира на конец тика
type StateUpdate struct {
	Players   []PlayerView   `json:"players" msgpack:"players"`
	Creatures []CreatureView `json:"creatures" msgpack:"creatures"`
	// TimeLeft - секунд до конца раунда
	TimeLeft float64 `json:"time_left" msgpack:"time_left"`
}

// PlayerView это DTO охотника
type PlayerView struct {
	ID        string `json:"id" msgpack:"id"`
	X         int    `json:"x" msgpack:"x"`
	Y         int    `json:"y" msgpack:"y"`
	Direction string `json:"direction" msgpack:"direction"`
}

// CreatureView это DTO зверя
type CreatureView struct {
	X         int    `json:"x" msgpack:"x"`
	Y         int    `json:"y" msgpack:"y"`
	Direction string `json:"direction" msgpack:"direction"`
	Tier      string `json:"tier" msgpack:"tier"`
}

// --- Конструкторы ---

func Welcome(sessionID, phase string) ServerResponse {
	return ServerResponse{Action: ActionWelcome, SessionID: sessionID, Phase: phase}
}

func Moved() ServerResponse {
	return ServerResponse{Action: ActionMoved}
}

func PictureTaken() ServerResponse {
	return ServerResponse{Action: ActionPictureTaken}
}

func GameStarted(level, width, height int, rows []string) ServerResponse {
	return ServerResponse{Action: ActionGameStarted, Level: level, Width: width, Height: height, Map: rows}
}

func State(update StateUpdate) ServerResponse {
	return ServerResponse{Action: ActionStateUpdate, State: &update}
}

func Score(level, score int) ServerResponse {
	return ServerResponse{Action: ActionScore, Level: level, Score: &score}
}
