package v1

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"kpidash/internal/exporter"
)

type exportDownload struct {
	result    *exporter.Result
	expiresAt time.Time
}

// exportDownloadStore 一次性下载链接，到期或下载后即删除
type exportDownloadStore struct {
	mu    sync.Mutex
	items map[string]exportDownload
	now   func() time.Time
}

func newExportDownloadStore() *exportDownloadStore {
	return &exportDownloadStore{
		items: make(map[string]exportDownload),
		now:   time.Now,
	}
}

func (s *exportDownloadStore) put(result *exporter.Result, ttl time.Duration) (token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	token = newRandomToken(24)
	s.items[token] = exportDownload{
		result:    result,
		expiresAt: now.Add(ttl),
	}
	return token
}

// take 取出并删除
func (s *exportDownloadStore) take(token string) (*exporter.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.purgeExpiredLocked(now)

	v, ok := s.items[token]
	if !ok {
		return nil, false
	}
	delete(s.items, token)
	return v.result, true
}

func (s *exportDownloadStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *exportDownloadStore) purgeExpiredLocked(now time.Time) {
	for k, v := range s.items {
		if now.After(v.expiresAt) {
			delete(s.items, k)
		}
	}
}

func newRandomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
