package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"photohunt-server/internal/domain"
	"photohunt-server/internal/engine"
	"photohunt-server/internal/infrastructure/storage"
	"photohunt-server/pkg/api"
	"photohunt-server/pkg/dungeon"
	"photohunt-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

func openRows(w, h int) []string {
	rows := make([]string, h)
	for y := range rows {
		rows[y] = strings.Repeat(".", w)
	}
	return rows
}

// startServer поднимает движок с маленькой картой и HTTP-сервер поверх него
func startServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	cfg := engine.NewConfig()
	cfg.Seed = 1
	cfg.Width, cfg.Height = 8, 6
	cfg.CreatureCount = 2
	cfg.TickRate = 50
	cfg.MaxLevel = 2

	levels := dungeon.NewLevelStore(dungeon.LevelTable{1: openRows(8, 6), 2: openRows(8, 6)})
	game, err := engine.NewService(cfg, levels)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = game.Run(ctx)
	}()

	srv := New(game, storage.NewMemoryStore(storage.TopLimit), "0")
	srv.Debug = true
	ts := httptest.NewServer(srv.Routes())

	t.Cleanup(func() {
		ts.Close()
		cancel()
		<-done
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readUntil читает JSON-сообщения, пока не встретит нужное действие
func readUntil(t *testing.T, conn *websocket.Conn, action string) api.ServerResponse {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		var msg api.ServerResponse
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Action == action {
			return msg
		}
	}
}

func TestWebSocket_RoundStart(t *testing.T) {
	srv, ts := startServer(t)
	conn := dial(t, ts, "?name=alice")

	welcome := readUntil(t, conn, api.ActionWelcome)
	assert.NotEmpty(t, welcome.SessionID)
	assert.Equal(t, "LEVEL_SELECTION", welcome.Phase)

	// Мусор и неизвестные команды не рвут соединение
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: "dance"}))

	require.NoError(t, conn.WriteJSON(api.ClientCommand{Action: api.ActionSelectLevel, Level: 2}))
	started := readUntil(t, conn, api.ActionGameStarted)
	assert.Equal(t, 2, started.Level)
	assert.Len(t, started.Map, 6)

	state := readUntil(t, conn, api.ActionStateUpdate)
	require.NotNil(t, state.State)
	assert.Len(t, state.State.Players, 1)
	assert.Len(t, state.State.Creatures, 2)
	assert.Equal(t, engine.PhasePlaying, srv.Engine.Phase())

	// Пока идет раунд, новых охотников не пускаем
	late := dial(t, ts, "")
	require.NoError(t, late.SetReadDeadline(time.Now().Add(3*time.Second)))
	_, _, err := late.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, websocket.ClosePolicyViolation, closeErr.Code)
}

func TestWebSocket_Msgpack(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts, "?codec=msgpack")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	frame, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, frame)

	var welcome api.ServerResponse
	require.NoError(t, msgpack.Unmarshal(data, &welcome))
	assert.Equal(t, api.ActionWelcome, welcome.Action)
}

func TestWebSocket_UnknownCodec(t *testing.T) {
	_, ts := startServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?codec=xml"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndVersion(t *testing.T) {
	_, ts := startServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "LEVEL_SELECTION", health["phase"])

	resp, err = http.Get(ts.URL + "/version")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestScores(t *testing.T) {
	srv, ts := startServer(t)

	ctx := context.Background()
	at := time.Date(2025, 12, 4, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"alice", "bob"} {
		require.NoError(t, srv.Scores.Record(ctx, domain.ScoreEntry{
			SessionID:  domain.SessionID(name),
			PlayerName: name,
			Level:      1,
			Score:      i + 1,
			TimeTaken:  time.Minute,
			RecordedAt: at,
		}))
	}

	resp, err := http.Get(ts.URL + "/scores?level=1")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rows []scoreView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[0].PlayerName)
	assert.Equal(t, 2, rows[0].Score)
	assert.Equal(t, "2025-12-04T12:00:00Z", rows[0].Date)
	assert.Equal(t, 60.0, rows[0].TimeTaken)

	for _, bad := range []string{"", "?level=zero", "?level=-1", "?level=1&limit=x"} {
		resp, err := http.Get(ts.URL + "/scores" + bad)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, bad)
	}
}

func TestDebugWorld(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts, "?name=alice")
	readUntil(t, conn, api.ActionWelcome)

	resp, err := http.Get(ts.URL + "/debug/world")
	require.NoError(t, err)
	defer resp.Body.Close()

	var dump worldDump
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dump))
	assert.Equal(t, "LEVEL_SELECTION", dump.Phase)
	assert.Equal(t, 8, dump.Width)
	require.Len(t, dump.Sessions, 1)
	assert.Equal(t, "alice", dump.Sessions[0].Name)

	for scale, width := range map[int]int{1: 8 * blockSize, 3: 24 * blockSize} {
		resp, err := http.Get(fmt.Sprintf("%s/debug/world.png?scale=%d", ts.URL, scale))
		require.NoError(t, err)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		img, err := png.Decode(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)
		assert.Equal(t, width, img.Bounds().Dx())
	}

	resp, err = http.Get(ts.URL + "/debug/world.png?scale=100")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
