package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bottleneckco/discord-help/models"
)

func TestCooldownTracker_Acquire(t *testing.T) {
	tracker := NewCooldownTracker(64, time.Minute)
	cmd := &models.Command{Name: "roll", Cooldown: &models.Cooldown{Rate: 2, Per: 5 * time.Second, Bucket: models.BucketUser}}
	alice := models.Invoker{UserID: "alice"}
	bob := models.Invoker{UserID: "bob"}
	now := time.Unix(1000, 0)

	_, ok := tracker.Acquire(cmd, alice, now)
	assert.True(t, ok)
	_, ok = tracker.Acquire(cmd, alice, now.Add(time.Second))
	assert.True(t, ok)

	wait, ok := tracker.Acquire(cmd, alice, now.Add(2*time.Second))
	assert.False(t, ok)
	assert.Equal(t, 3*time.Second, wait)

	_, ok = tracker.Acquire(cmd, bob, now.Add(2*time.Second))
	assert.True(t, ok, "buckets are per user")

	_, ok = tracker.Acquire(cmd, alice, now.Add(5*time.Second))
	assert.True(t, ok, "window reset")
}

func TestCooldownTracker_NoPolicy(t *testing.T) {
	tracker := NewCooldownTracker(8, time.Minute)
	cmd := &models.Command{Name: "ping"}
	for i := 0; i < 10; i++ {
		_, ok := tracker.Acquire(cmd, models.Invoker{UserID: "u"}, time.Now())
		assert.True(t, ok)
	}
}

func TestBucketKey(t *testing.T) {
	inv := models.Invoker{UserID: "u", ChannelID: "c", GuildID: "g"}
	dm := models.Invoker{UserID: "u", ChannelID: "c"}

	assert.Equal(t, "global", bucketKey(models.BucketDefault, inv))
	assert.Equal(t, "user:u", bucketKey(models.BucketUser, inv))
	assert.Equal(t, "guild:g", bucketKey(models.BucketGuild, inv))
	assert.Equal(t, "user:u", bucketKey(models.BucketGuild, dm))
	assert.Equal(t, "channel:c", bucketKey(models.BucketChannel, inv))
}
