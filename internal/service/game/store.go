package game

import (
	"sort"
	"strings"
	"sync"
)

// Store 是房间号到房间的映射，也是游戏数据唯一的可变状态
type Store interface {
	Get(code string) *Room
	Upsert(code string, room *Room)
	Delete(code string)
	ListCodesContainingParticipant(connID string) []string
	Codes() []string
}

// 房间号大小写不敏感
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type MemoryStore struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string]*Room),
	}
}

func (s *MemoryStore) Get(code string) *Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.rooms[NormalizeCode(code)]
}

func (s *MemoryStore) Upsert(code string, room *Room) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms[NormalizeCode(code)] = room
}

func (s *MemoryStore) Delete(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, NormalizeCode(code))
}

func (s *MemoryStore) ListCodesContainingParticipant(connID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]string, 0, 1)
	if connID == "" {
		return codes
	}

	for code, room := range s.rooms {
		if room.FindByConn(connID) != nil {
			codes = append(codes, code)
		}
	}

	sort.Strings(codes)

	return codes
}

func (s *MemoryStore) Codes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}
