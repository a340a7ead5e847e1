package rowstore

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local development.
type MemoryStore struct {
	mu         sync.RWMutex
	partitions map[string]*memPartition
}

type memPartition struct {
	header []string
	rows   []Row
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{partitions: make(map[string]*memPartition)}
}

func (s *MemoryStore) EnsurePartition(ctx context.Context, name string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partitions[name]; !ok {
		s.partitions[name] = &memPartition{header: append([]string(nil), header...)}
	}
	return nil
}

func (s *MemoryStore) ScanRows(ctx context.Context, name string) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.partitions[name]
	if !ok {
		return nil, ErrPartitionNotFound
	}
	rows := make([]Row, len(p.rows))
	for i, r := range p.rows {
		rows[i] = r.Clone()
	}
	return rows, nil
}

func (s *MemoryStore) AppendRow(ctx context.Context, name string, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.partitions[name]
	if !ok {
		return ErrPartitionNotFound
	}
	p.rows = append(p.rows, row.Clone())
	return nil
}

func (s *MemoryStore) UpdateRow(ctx context.Context, name string, index int, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.partitions[name]
	if !ok {
		return ErrPartitionNotFound
	}
	if index < 0 || index >= len(p.rows) {
		return ErrRowOutOfRange
	}
	p.rows[index] = row.Clone()
	return nil
}

func (s *MemoryStore) DeleteRow(ctx context.Context, name string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.partitions[name]
	if !ok {
		return ErrPartitionNotFound
	}
	if index < 0 || index >= len(p.rows) {
		return ErrRowOutOfRange
	}
	p.rows = append(p.rows[:index], p.rows[index+1:]...)
	return nil
}

func (s *MemoryStore) ListPartitions(ctx context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var names []string
	for name := range s.partitions {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}
