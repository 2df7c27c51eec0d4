package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recorder struct {
	titles []string
	bodies []string
	err    error
}

func (r *recorder) Notify(ctx context.Context, title, body string) error {
	r.titles = append(r.titles, title)
	r.bodies = append(r.bodies, body)
	return r.err
}

// TestMulti tests fan-out and error joining
// TestMulti 测试分发和错误合并
func TestMulti(t *testing.T) {
	ok := &recorder{}
	boom := errors.New("boom")
	failing := &recorder{err: boom}

	err := Multi{ok, nil, failing}.Notify(context.Background(), "t", "b")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"t"}, ok.titles)
	assert.Equal(t, []string{"b"}, failing.bodies)

	assert.NoError(t, Multi{ok}.Notify(context.Background(), "t2", "b2"))
	assert.NoError(t, Multi{}.Notify(context.Background(), "t3", "b3"))
}

// TestLogNotifier tests that notifications reach the logger
func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	n := &LogNotifier{Logger: zap.New(core).Sugar()}

	require.NoError(t, n.Notify(context.Background(), "🚨 Suricata Alert", "X\nFrom: 1.1.1.1 -> 2.2.2.2"))
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "Suricata Alert")
	assert.Equal(t, "X\nFrom: 1.1.1.1 -> 2.2.2.2", entries[0].ContextMap()["body"])
}

// TestDesktopNotifier_MissingCommand tests that a missing helper surfaces as an error
// TestDesktopNotifier_MissingCommand 测试缺少通知工具时返回错误
func TestDesktopNotifier_MissingCommand(t *testing.T) {
	d := &DesktopNotifier{Command: "suriwatch-no-such-notifier"}
	assert.False(t, d.Available())
	assert.Error(t, d.Notify(context.Background(), "t", "b"))
}

func TestNotifierFunc(t *testing.T) {
	var got string
	f := NotifierFunc(func(ctx context.Context, title, body string) error {
		got = title + "|" + body
		return nil
	})
	require.NoError(t, f.Notify(context.Background(), "a", "b"))
	assert.Equal(t, "a|b", got)
}
