package domain

// ClientEvent - намерение игрока, живет в пределах одного тика.
// Direction имеет смысл только для ActionMove.
type ClientEvent struct {
	Session   SessionID
	Action    ActionType
	Direction Direction
}

// MoveEvent - удобный конструктор для движения
func MoveEvent(id SessionID, d Direction) ClientEvent {
	return ClientEvent{Session: id, Action: ActionMove, Direction: d}
}

// PictureEvent - удобный конструктор для снимка
func PictureEvent(id SessionID) ClientEvent {
	return ClientEvent{Session: id, Action: ActionTakePicture}
}
