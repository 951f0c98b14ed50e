package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kpidash/internal/model"
)

// ErrSessionNotFound 会话不存在
var ErrSessionNotFound = errors.New("session not found")

// session 手动录入会话，记录按录入顺序保存
type session struct {
	records   []model.KPIRecord
	createdAt time.Time
	updatedAt time.Time
}

// MemoryStore 手动录入会话的内存存储
type MemoryStore struct {
	sessions map[string]*session
	mu       sync.RWMutex
	now      func() time.Time
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// CreateSession 新建会话，返回会话 ID
func (s *MemoryStore) CreateSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New().String()
	now := s.now()
	s.sessions[id] = &session{createdAt: now, updatedAt: now}
	return id
}

// Append 追加一条记录
//
// 缺少 KPI 名称或活动类型时拒绝；方向为空时默认 HigherIsBetter。
func (s *MemoryStore) Append(id string, rec model.KPIRecord) (model.KPIRecord, error) {
	rec.CampaignType = strings.TrimSpace(rec.CampaignType)
	rec.KPIName = strings.TrimSpace(rec.KPIName)
	if err := rec.Validate(); err != nil {
		return model.KPIRecord{}, err
	}
	if rec.Direction == "" {
		rec.Direction = model.HigherIsBetter
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return model.KPIRecord{}, ErrSessionNotFound
	}
	sess.records = append(sess.records, cloneRecord(rec))
	sess.updatedAt = s.now()
	return cloneRecord(rec), nil
}

// Records 返回会话记录的深拷贝，调用方修改不影响存储
func (s *MemoryStore) Records(id string) ([]model.KPIRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := make([]model.KPIRecord, len(sess.records))
	for i, rec := range sess.records {
		out[i] = cloneRecord(rec)
	}
	return out, nil
}

// cloneRecord 复制数值指针，避免与存储共享
func cloneRecord(rec model.KPIRecord) model.KPIRecord {
	rec.Benchmark = cloneFloat(rec.Benchmark)
	rec.Actual = cloneFloat(rec.Actual)
	return rec
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Clear 清空会话记录，会话本身保留
func (s *MemoryStore) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	sess.records = nil
	sess.updatedAt = s.now()
	return nil
}

// Delete 删除会话
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Count 会话数量
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PruneIdle 删除超过 maxIdle 未更新的会话，返回删除数量
func (s *MemoryStore) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	n := 0
	for id, sess := range s.sessions {
		if sess.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
