package dungeon

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"photohunt-server/internal/domain"
)

//go:embed levels/forest.txt
var forestLevels []byte

// LevelTable - раскладки уровней: номер -> строки карты
type LevelTable map[int][]string

// Levels возвращает номера уровней по возрастанию
func (t LevelTable) Levels() []int {
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// DefaultLevels разбирает встроенную таблицу уровней.
func DefaultLevels() LevelTable {
	table, err := ParseLevels(bytes.NewReader(forestLevels))
	if err != nil {
		// Встроенная таблица проверяется тестами
		panic(fmt.Sprintf("embedded levels are broken: %v", err))
	}
	return table
}

// ParseLevels читает таблицу в формате:
//
//	= 1
//	..T..B..
//	........
//
// Заголовок "= N" начинает уровень, пустые строки и строки с '#' пропускаются.
func ParseLevels(r io.Reader) (LevelTable, error) {
	table := make(LevelTable)
	current := -1

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r ")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "=") {
			id, err := strconv.Atoi(strings.TrimSpace(line[1:]))
			if err != nil {
				return nil, fmt.Errorf("line %d: bad level header %q: %w", lineNo, line, domain.ErrBadLayout)
			}
			if _, dup := table[id]; dup {
				return nil, fmt.Errorf("line %d: duplicate level %d: %w", lineNo, id, domain.ErrBadLayout)
			}
			current = id
			table[id] = nil
			continue
		}

		if current < 0 {
			return nil, fmt.Errorf("line %d: row before first level header: %w", lineNo, domain.ErrBadLayout)
		}
		table[current] = append(table[current], line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read levels: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("no levels found: %w", domain.ErrBadLayout)
	}
	return table, nil
}

// LoadLevelsFile читает таблицу уровней с диска
func LoadLevelsFile(path string) (LevelTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLevels(f)
}

// LevelStore хранит текущую таблицу и позволяет заменить ее на лету.
// Замена видна только следующему Reset мира.
type LevelStore struct {
	mu    sync.RWMutex
	table LevelTable
}

func NewLevelStore(table LevelTable) *LevelStore {
	return &LevelStore{table: table}
}

// Layout возвращает раскладку уровня
func (s *LevelStore) Layout(level int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.table[level]
	if !ok || len(rows) == 0 {
		return nil, fmt.Errorf("level %d: %w", level, domain.ErrUnknownLevel)
	}
	return rows, nil
}

// Replace подменяет таблицу целиком
func (s *LevelStore) Replace(table LevelTable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}

// Count возвращает количество уровней в таблице
func (s *LevelStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.table)
}
