package attendance

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Locker 按键的非阻塞建议锁
// TryLock 返回 false 表示锁已被持有，调用方应直接拒绝而不是等待
// 获取成功时返回持有者令牌，Unlock 只在令牌仍匹配时释放，锁过期后被他人获取则不受影响
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// LockKey 切换出勤的锁键
func LockKey(studentID string, date time.Time) string {
	return "toggle:" + studentID + ":" + date.Format("2006-01-02")
}

// LocalLocker 进程内实现，Redis 不可用时使用
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localLock
	nowFn func() time.Time
}

type localLock struct {
	token   string
	expires time.Time
}

// NewLocalLocker 创建进程内锁
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]localLock), nowFn: time.Now}
}

func (l *LocalLocker) TryLock(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if h, ok := l.held[key]; ok && now.Before(h.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	l.held[key] = localLock{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (l *LocalLocker) Unlock(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.held[key]; ok && h.token == token {
		delete(l.held, key)
	}
	return nil
}
