package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"photohunt-server/internal/clock"
	"photohunt-server/internal/domain"
	"photohunt-server/internal/engine/handlers"
	"photohunt-server/internal/engine/handlers/actions"
	"photohunt-server/internal/network"
	"photohunt-server/internal/systems"
	"photohunt-server/pkg/api"
	"photohunt-server/pkg/logger"
	"photohunt-server/pkg/utils"
)

var (
	// ErrJoinRefused - подключаться можно только во время выбора уровня
	ErrJoinRefused = errors.New("round in progress, try again later")
	// ErrStopped - цикл игры остановлен
	ErrStopped = errors.New("game service stopped")
)

const inboxSize = 256

type requestKind uint8

const (
	reqJoin requestKind = iota
	reqLeave
	reqSelectLevel
	reqInspect
)

// request - запрос к циклу игры от транспорта или HTTP
type request struct {
	kind    requestKind
	session domain.SessionID
	name    string
	level   int
	reply   chan joinReply
	inspect func(w *World, phase Phase)
	done    chan struct{}
}

type joinReply struct {
	id      domain.SessionID
	updates <-chan api.ServerResponse
	err     error
}

// GameService - Tick Engine и Lifecycle Controller.
// Только цикл игры меняет мир и фазу; транспорт общается с ним через inbox и очередь событий.
type GameService struct {
	cfg   Config
	World *World
	Hub   *network.Broadcaster

	clock  clock.Clock
	rng    *rand.Rand
	scores ScoreRecorder
	log    *logrus.Entry

	phase    atomic.Uint32
	inbox    chan request
	stopped  chan struct{}
	stopOnce sync.Once

	handlers map[domain.ActionType]handlers.HandlerFunc

	drops   []domain.SessionID
	pending sync.WaitGroup
	round   int
}

// Option настраивает GameService
type Option func(*GameService)

// WithClock подменяет часы раунда
func WithClock(c clock.Clock) Option {
	return func(s *GameService) { s.clock = c }
}

// WithScoreRecorder подключает хранилище истории счета
func WithScoreRecorder(r ScoreRecorder) Option {
	return func(s *GameService) { s.scores = r }
}

// WithBroadcaster подменяет рассыльщик (например, с другим размером ящиков)
func WithBroadcaster(b *network.Broadcaster) Option {
	return func(s *GameService) { s.Hub = b }
}

func NewService(cfg Config, levels LayoutSource, opts ...Option) (*GameService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	rng := utils.NewRand(cfg.Seed)
	world, err := NewWorld(cfg, levels, rng)
	if err != nil {
		return nil, err
	}

	s := &GameService{
		cfg:      cfg,
		World:    world,
		Hub:      network.NewBroadcaster(network.DefaultMailboxSize),
		clock:    clock.New(),
		rng:      rng,
		log:      logger.Log.WithField("component", "engine"),
		inbox:    make(chan request, inboxSize),
		stopped:  make(chan struct{}),
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerHandlers()
	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionMove] = handlers.WithDirection(actions.HandleMove)
	s.handlers[domain.ActionTakePicture] = handlers.WithEmptyPayload(actions.HandleTakePicture)
}

// Config возвращает параметры движка
func (s *GameService) Config() Config { return s.cfg }

// Phase - текущая фаза. Безопасно вызывать из любой горутины.
func (s *GameService) Phase() Phase {
	return Phase(s.phase.Load())
}

func (s *GameService) setPhase(p Phase) {
	old := s.Phase()
	s.phase.Store(uint32(p))
	s.log.WithFields(logrus.Fields{"from": old, "phase": p, "round": s.round}).Info("phase changed")
}

// --- API для транспорта ---

// Join подключает нового охотника. Возвращает его ID и канал исходящих сообщений.
func (s *GameService) Join(ctx context.Context, name string) (domain.SessionID, <-chan api.ServerResponse, error) {
	reply := make(chan joinReply, 1)
	if err := s.enqueue(ctx, request{kind: reqJoin, name: name, reply: reply}); err != nil {
		return "", nil, err
	}

	select {
	case r := <-reply:
		return r.id, r.updates, r.err
	case <-ctx.Done():
		// Запрос уже в inbox: если цикл его примет, сразу отключаем
		go func() {
			select {
			case r := <-reply:
				if r.err == nil {
					s.Leave(r.id)
				}
			case <-s.stopped:
			}
		}()
		return "", nil, ctx.Err()
	case <-s.stopped:
		return "", nil, ErrStopped
	}
}

// Leave сообщает циклу, что клиент отключился
func (s *GameService) Leave(id domain.SessionID) {
	_ = s.enqueue(context.Background(), request{kind: reqLeave, session: id})
}

// Submit принимает команду клиента. Намерения идут в очередь событий,
// выбор уровня - в inbox. Неуместные по фазе намерения молча отбрасываются.
func (s *GameService) Submit(ctx context.Context, id domain.SessionID, cmd api.ClientCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	switch domain.ParseAction(cmd.Action) {
	case domain.ActionSelectLevel:
		return s.enqueue(ctx, request{kind: reqSelectLevel, session: id, level: cmd.Level})

	case domain.ActionMove:
		if s.Phase() != PhasePlaying {
			return nil
		}
		dir, _ := domain.ParseDirection(cmd.Direction)
		s.World.Events.Push(domain.MoveEvent(id, dir))

	case domain.ActionTakePicture:
		if s.Phase() != PhasePlaying {
			return nil
		}
		s.World.Events.Push(domain.PictureEvent(id))
	}
	return nil
}

// Inspect выполняет fn внутри цикла игры, между тиками.
// fn не должна сохранять ссылки на мир.
func (s *GameService) Inspect(ctx context.Context, fn func(w *World, phase Phase)) error {
	done := make(chan struct{})
	if err := s.enqueue(ctx, request{kind: reqInspect, inspect: fn, done: done}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrStopped
	}
}

func (s *GameService) enqueue(ctx context.Context, req request) error {
	select {
	case s.inbox <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.stopped:
		return ErrStopped
	}
}

// --- GAME LOOP ---

// Run крутит цикл игры с частотой TickRate до отмены ctx
func (s *GameService) Run(ctx context.Context) error {
	defer s.stopOnce.Do(func() { close(s.stopped) })

	ticker := time.NewTicker(s.cfg.TickInterval())
	defer ticker.Stop()

	s.log.WithFields(logrus.Fields{
		"tick_rate": s.cfg.TickRate,
		"round":     s.cfg.RoundDuration,
	}).Info("game loop started")

	for {
		select {
		case <-ctx.Done():
			s.log.Info("game loop stopped")
			s.pending.Wait()
			return nil
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step - один тик: разобрать inbox, затем работа текущей фазы.
func (s *GameService) Step() {
	s.pump()

	switch s.Phase() {
	case PhasePlaying:
		s.tick()
	case PhaseFinished:
		s.finish()
	}

	s.flushDrops()
}

// Flush ждет, пока фоновые записи счета завершатся
func (s *GameService) Flush() {
	s.pending.Wait()
}

func (s *GameService) pump() {
	for {
		select {
		case req := <-s.inbox:
			s.handle(req)
		default:
			return
		}
	}
}

func (s *GameService) handle(req request) {
	switch req.kind {
	case reqJoin:
		id, updates, err := s.addPlayer(req.name)
		req.reply <- joinReply{id: id, updates: updates, err: err}
	case reqLeave:
		s.dropSession(req.session, "client left")
	case reqSelectLevel:
		s.startRound(req.session, req.level)
	case reqInspect:
		req.inspect(s.World, s.Phase())
		close(req.done)
	}
}

func (s *GameService) addPlayer(name string) (domain.SessionID, <-chan api.ServerResponse, error) {
	if s.Phase() != PhaseLevelSelection {
		s.log.WithField("phase", s.Phase()).Info("connection refused: round in progress")
		return "", nil, ErrJoinRefused
	}

	id := domain.SessionID(utils.GenerateID())
	if _, err := s.World.AddSession(id, name); err != nil {
		return "", nil, err
	}

	updates := s.Hub.Register(id)
	s.sendTo(id, api.Welcome(id.String(), s.Phase().String()))
	return id, updates, nil
}

func (s *GameService) dropSession(id domain.SessionID, reason string) {
	if s.World.RemoveSession(id) {
		s.log.WithFields(logrus.Fields{"session_id": id, "reason": reason}).Info("session dropped")
	}
	s.Hub.Unregister(id)
}

func (s *GameService) startRound(id domain.SessionID, level int) {
	log := s.log.WithFields(logrus.Fields{"session_id": id, "level": level})

	if s.Phase() != PhaseLevelSelection {
		log.WithField("phase", s.Phase()).Debug("level select ignored outside LEVEL_SELECTION")
		return
	}
	if _, ok := s.World.Session(id); !ok {
		log.Debug("level select from unknown session ignored")
		return
	}

	if err := s.World.Reset(level); err != nil {
		if errors.Is(err, domain.ErrLevelOutOfRange) {
			log.WithError(err).Warn("level select ignored")
		} else {
			log.WithError(err).Error("round start failed, staying in LEVEL_SELECTION")
		}
		return
	}

	s.World.Start(s.clock.Now())
	s.round++
	s.setPhase(PhasePlaying)

	m := s.World.Map()
	s.broadcast(api.GameStarted(level, m.Width, m.Height, m.Rows()))
	log.WithField("round", s.round).Info("round started")
}

func (s *GameService) tick() {
	now := s.clock.Now()

	// 1. Намерения игроков в порядке поступления
	s.applyIntents(s.World.collectIntents())

	// 2. Звери реагируют на позиции этого тика
	for _, c := range s.World.Creatures() {
		s.stepCreature(c)
	}

	// 3. Снимок уходит после всех изменений
	s.broadcast(api.State(s.World.BuildSnapshot(now, s.cfg.RoundDuration)))

	// 4. Конец раунда в этот же тик
	if s.World.Elapsed(now) >= s.cfg.RoundDuration {
		s.setPhase(PhaseFinished)
	}
}

func (s *GameService) applyIntents(intents []intent) {
	for _, in := range intents {
		h, ok := s.handlers[in.event.Action]
		if !ok {
			continue
		}

		ctx := handlers.Context{World: s.World, Actor: in.session, PhotoRange: s.cfg.PhotoRange}
		res, err := h(ctx, in.event)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"session_id": in.session.ID,
				"action":     in.event.Action,
			}).Debug("intent rejected")
			continue
		}

		if len(res.Photo.Rivals) > 0 {
			s.log.WithFields(logrus.Fields{
				"session_id": in.session.ID,
				"rivals":     res.Photo.Rivals,
			}).Info("rival photographed")
		}
		if res.Reply != nil {
			s.sendTo(in.session.ID, *res.Reply)
		}
	}
}

// stepCreature изолирует обновление одного зверя: паника пропускает только его тик
func (s *GameService) stepCreature(c *domain.Creature) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithFields(logrus.Fields{
				"creature_id": c.ID,
				"tier":        c.Tier,
			}).Errorf("creature update panicked: %v", r)
		}
	}()
	systems.StepCreature(c, s.World, s.rng, s.cfg.MaxAlert())
}

func (s *GameService) finish() {
	now := s.clock.Now()
	entries := s.World.finalScores(now)

	for _, e := range entries {
		s.sendTo(e.SessionID, api.Score(e.Level, e.Score))
	}
	s.recordScores(entries)

	s.log.WithFields(logrus.Fields{
		"round":   s.round,
		"level":   s.World.Level(),
		"players": len(entries),
	}).Info("round finished")
	s.setPhase(PhaseLevelSelection)
}

func (s *GameService) sendTo(id domain.SessionID, msg api.ServerResponse) {
	if !s.Hub.SendTo(id, msg) {
		s.drops = append(s.drops, id)
	}
}

func (s *GameService) broadcast(msg api.ServerResponse) {
	s.drops = append(s.drops, s.Hub.Broadcast(msg)...)
}

// flushDrops отключает клиентов, которым не удалось доставить сообщение
func (s *GameService) flushDrops() {
	for _, id := range s.drops {
		s.dropSession(id, "send failed")
	}
	s.drops = s.drops[:0]
}
