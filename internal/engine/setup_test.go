package engine

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"photohunt-server/internal/clock"
	"photohunt-server/internal/domain"
	"photohunt-server/pkg/api"
	"photohunt-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// stubLayouts - таблица уровней в памяти
type stubLayouts map[int][]string

func (s stubLayouts) Layout(level int) ([]string, error) {
	rows, ok := s[level]
	if !ok {
		return nil, fmt.Errorf("level %d: %w", level, domain.ErrUnknownLevel)
	}
	return rows, nil
}

func openRows(w, h int) []string {
	rows := make([]string, h)
	for y := range rows {
		rows[y] = strings.Repeat(".", w)
	}
	return rows
}

// smallLayouts - уровни 1..3 на поле 8x6; на третьем есть деревья и кусты
func smallLayouts() stubLayouts {
	return stubLayouts{
		1: openRows(8, 6),
		2: openRows(8, 6),
		3: {
			"..T.....",
			"..T..B..",
			"........",
			".RR...T.",
			"....B...",
			"........",
		},
	}
}

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 42
	cfg.Width = 8
	cfg.Height = 6
	cfg.CreatureCount = 3
	return cfg
}

var testStart = time.Date(2025, 12, 4, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, opts ...Option) (*GameService, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(testStart)
	opts = append([]Option{WithClock(clk)}, opts...)

	s, err := NewService(testConfig(), smallLayouts(), opts...)
	require.NoError(t, err)
	return s, clk
}

// join подключает игрока в обход inbox и забирает welcome
func join(t *testing.T, s *GameService, name string) (domain.SessionID, <-chan api.ServerResponse) {
	t.Helper()
	id, updates, err := s.addPlayer(name)
	require.NoError(t, err)

	welcome := <-updates
	require.Equal(t, api.ActionWelcome, welcome.Action)
	return id, updates
}

func submit(t *testing.T, s *GameService, id domain.SessionID, cmd api.ClientCommand) {
	t.Helper()
	require.NoError(t, s.Submit(context.Background(), id, cmd))
}

func selectLevel(t *testing.T, s *GameService, id domain.SessionID, level int) {
	t.Helper()
	submit(t, s, id, api.ClientCommand{Action: api.ActionSelectLevel, Level: level})
	s.Step()
}

// drain забирает все, что уже лежит в ящике
func drain(ch <-chan api.ServerResponse) []api.ServerResponse {
	var out []api.ServerResponse
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, msg)
		default:
			return out
		}
	}
}

func actionsOf(msgs []api.ServerResponse) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Action)
	}
	return out
}
