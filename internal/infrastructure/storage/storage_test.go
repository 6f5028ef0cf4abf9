package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"photohunt-server/internal/domain"
)

var base = time.Date(2025, 12, 4, 12, 0, 0, 0, time.UTC)

func entry(name string, level, score int, after time.Duration) domain.ScoreEntry {
	return domain.ScoreEntry{
		SessionID:  domain.SessionID("sess-" + name),
		PlayerName: name,
		Level:      level,
		Score:      score,
		TimeTaken:  60 * time.Second,
		RecordedAt: base.Add(after),
	}
}

// storeSuite - общие проверки для всех реализаций ScoreStore
type storeSuite struct {
	suite.Suite
	ctx   context.Context
	store ScoreStore
	open  func() ScoreStore
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open()
}

func (s *storeSuite) TearDownTest() {
	s.NoError(s.store.Close())
}

func (s *storeSuite) TestOrdering() {
	s.Require().NoError(s.store.Record(s.ctx, entry("bob", 1, 2, time.Minute)))
	s.Require().NoError(s.store.Record(s.ctx, entry("alice", 1, 3, 2*time.Minute)))
	s.Require().NoError(s.store.Record(s.ctx, entry("carol", 1, 2, 0)))
	s.Require().NoError(s.store.Record(s.ctx, entry("rival", 1, domain.RivalScore, 0)))

	top, err := s.store.Top(s.ctx, 1, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 4)

	var names []string
	for _, e := range top {
		names = append(names, e.PlayerName)
	}
	s.Equal([]string{"alice", "carol", "bob", "rival"}, names)
	s.Equal(60*time.Second, top[0].TimeTaken)
	s.True(base.Add(2*time.Minute).Equal(top[0].RecordedAt))
	s.Equal(domain.SessionID("sess-alice"), top[0].SessionID)
}

func (s *storeSuite) TestLevelsAreSeparate() {
	s.Require().NoError(s.store.Record(s.ctx, entry("alice", 1, 3, 0)))
	s.Require().NoError(s.store.Record(s.ctx, entry("bob", 2, 1, 0)))

	top, err := s.store.Top(s.ctx, 2, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal("bob", top[0].PlayerName)

	empty, err := s.store.Top(s.ctx, 7, 10)
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *storeSuite) TestTopTen() {
	for i := 0; i < 15; i++ {
		s.Require().NoError(s.store.Record(s.ctx, entry(fmt.Sprintf("p%02d", i), 3, i, time.Duration(i)*time.Second)))
	}

	top, err := s.store.Top(s.ctx, 3, 0)
	s.Require().NoError(err)
	s.Require().Len(top, TopLimit)
	s.Equal(14, top[0].Score)
	s.Equal(5, top[TopLimit-1].Score)

	three, err := s.store.Top(s.ctx, 3, 3)
	s.Require().NoError(err)
	s.Len(three, 3)
}

func (s *storeSuite) TestRejectsBadLevel() {
	err := s.store.Record(s.ctx, entry("alice", 0, 1, 0))
	s.ErrorIs(err, ErrInvalidLevel)
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &storeSuite{open: func() ScoreStore { return NewMemoryStore(TopLimit) }})
}

func TestSQLiteStore(t *testing.T) {
	suite.Run(t, &storeSuite{open: func() ScoreStore {
		store, err := NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		return store
	}})
}

// RedisStoreSuite проверяет общее поведение и то, что в Redis лежит не больше TopLimit записей
type RedisStoreSuite struct {
	storeSuite
	miniRedis *miniredis.Miniredis
}

func (s *RedisStoreSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.open = func() ScoreStore {
		store, err := NewRedisStore(&RedisConfig{
			Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
		})
		s.Require().NoError(err)
		return store
	}
	s.storeSuite.SetupTest()
}

func (s *RedisStoreSuite) TearDownTest() {
	s.storeSuite.TearDownTest()
	s.miniRedis.Close()
}

func (s *RedisStoreSuite) TestTrimmedInRedis() {
	for i := 0; i < 12; i++ {
		s.Require().NoError(s.store.Record(s.ctx, entry(fmt.Sprintf("p%02d", i), 4, i, 0)))
	}

	members, err := s.miniRedis.ZMembers(ScoresKey(4))
	s.Require().NoError(err)
	s.Len(members, TopLimit)
}

func (s *RedisStoreSuite) TestConfigValidation() {
	_, err := NewRedisStore(nil)
	s.Error(err)
	_, err = NewRedisStore(&RedisConfig{})
	s.Error(err)
}

func TestRedisStore(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func TestOpen(t *testing.T) {
	store, err := Open("", "")
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("default backend is %T, want *MemoryStore", store)
	}

	if _, err := Open("mongo", ""); err == nil {
		t.Error("unknown backend must fail")
	}
}
