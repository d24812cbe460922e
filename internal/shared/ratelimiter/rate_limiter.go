package ratelimiter

import (
	"sync"
	"time"
)

// RateLimiterInterface は、ログイン試行などの操作の頻度をキー単位で制限するインターフェースです。
// キーには呼び出し元がクライアントIPなどの識別子を渡します。
type RateLimiterInterface interface {
	Allow(key string) bool
}

// window はキーごとの固定ウィンドウの状態です。
type window struct {
	count     int
	lastReset time.Time
}

// RateLimiterは、固定ウィンドウ方式でキーごとに操作の頻度を制限します。
// 認証エンドポイントへの総当たり攻撃の抑制に使用されます。
// グローバルな単一バケツではなくクライアント単位で数えるため、
// 一人の攻撃者が他の利用者のログインを塞ぐことはできません。
type RateLimiter struct {
	mu       sync.Mutex
	limit    int           // ウィンドウあたりの上限
	interval time.Duration // どの単位でリセットするか
	windows  map[string]*window
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allowは指定されたキーがレートリミットの上限に達しているかを確認します。
// 上限内であればtrueを返してカウントを進め、超過していればfalseを返します。
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	// 新しいキー、または interval を過ぎたらウィンドウを作り直す
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		rl.sweepLocked(now)
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// sweepLocked は期限切れのウィンドウを削除し、マップの際限ない成長を防ぎます。
// 呼び出し側がmuを保持していることを前提とします。
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if len(rl.windows) < 1024 {
		return
	}
	for key, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, key)
		}
	}
}
