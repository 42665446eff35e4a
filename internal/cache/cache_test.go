package cache

import (
	"context"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type entry struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

func TestKey(t *testing.T) {
	a := Key("resume", "text", "model-a")
	b := Key("resume:", "text", "model-a")
	c := Key("resume", "text", "model-b")
	d := Key("resume", "textmodel-a")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Regexp(t, `^resume:[0-9a-f]{64}$`, a)
}

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	require.NoError(t, m.SetJSON(ctx, "k", entry{Name: "Jane", Skills: []string{"Go"}}, time.Hour))

	var got entry
	found, err := m.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Jane", got.Name)

	// reads are copies
	got.Skills[0] = "Rust"
	var again entry
	_, err = m.GetJSON(ctx, "k", &again)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, again.Skills)
}

func TestMemory_Miss(t *testing.T) {
	var got entry
	found, err := NewMemory(nil).GetJSON(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	clk := testclock.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m := NewMemory(clk)

	require.NoError(t, m.SetJSON(ctx, "k", entry{Name: "Jane"}, time.Minute))

	clk.Advance(59 * time.Second)
	var got entry
	found, err := m.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)

	clk.Advance(time.Second)
	found, err = m.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0, m.Len())
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	require.NoError(t, c.SetJSON(context.Background(), "k", 1, 0))
	found, err := c.GetJSON(context.Background(), "k", new(int))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNewRedis_InvalidURL(t *testing.T) {
	_, err := NewRedis(context.Background(), "not-a-url", zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestNewRedis_UnavailableIsBypassed(t *testing.T) {
	ctx := context.Background()
	r, err := NewRedis(ctx, "redis://127.0.0.1:1/0", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, r.Available())

	require.NoError(t, r.SetJSON(ctx, "k", entry{Name: "Jane"}, time.Minute))
	var got entry
	found, err := r.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, r.Close())
}
