package registry

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/bottleneckco/discord-help/models"
)

type bucket struct {
	start  time.Time
	tokens int
}

// CooldownTracker enforces command cooldown policies. Buckets live in an
// expiring LRU so idle users do not accumulate.
type CooldownTracker struct {
	mu      sync.Mutex
	buckets *expirable.LRU[string, *bucket]
}

// NewCooldownTracker creates a tracker holding at most size buckets, each
// dropped after ttl of inactivity. ttl must cover the longest cooldown window.
func NewCooldownTracker(size int, ttl time.Duration) *CooldownTracker {
	return &CooldownTracker{
		buckets: expirable.NewLRU[string, *bucket](size, nil, ttl),
	}
}

// Acquire takes one use of cmd's cooldown for inv at now. When the bucket is
// exhausted it returns false and how long until the window resets.
func (t *CooldownTracker) Acquire(cmd *models.Command, inv models.Invoker, now time.Time) (time.Duration, bool) {
	cd := cmd.Cooldown
	if cd == nil || cd.Rate <= 0 || cd.Per <= 0 {
		return 0, true
	}
	key := cmd.QualifiedName() + "|" + bucketKey(cd.Bucket, inv)

	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.buckets.Get(key)
	if !ok || !now.Before(b.start.Add(cd.Per)) {
		t.buckets.Add(key, &bucket{start: now, tokens: 1})
		return 0, true
	}
	if b.tokens >= cd.Rate {
		return b.start.Add(cd.Per).Sub(now), false
	}
	b.tokens++
	return 0, true
}

func bucketKey(bt models.BucketType, inv models.Invoker) string {
	switch bt {
	case models.BucketUser:
		return "user:" + inv.UserID
	case models.BucketGuild:
		if inv.InDM() {
			return "user:" + inv.UserID
		}
		return "guild:" + inv.GuildID
	case models.BucketChannel:
		return "channel:" + inv.ChannelID
	default:
		return "global"
	}
}
