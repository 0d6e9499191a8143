package classify

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartwallet/smartwallet/internal/common"
	"github.com/smartwallet/smartwallet/internal/model"
)

type stubFast struct {
	txn     model.Transaction
	handled bool
	calls   int
}

func (s *stubFast) Classify(_ string, _ []string) (model.Transaction, bool) {
	s.calls++
	return s.txn, s.handled
}

type stubSlow struct {
	txn     model.Transaction
	err     error
	calls   int
	lastReq model.Request
}

func (s *stubSlow) Classify(_ context.Context, req model.Request) (model.Transaction, error) {
	s.calls++
	s.lastReq = req
	return s.txn, s.err
}

func TestPipelineClassifyTextEmptyInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "whitespace only", text: "   \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fast := &stubFast{}
			slow := &stubSlow{}
			pipeline := New(fast, slow, slog.Default())

			_, err := pipeline.ClassifyText(context.Background(), model.Request{Text: tt.text})
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrEmptyInput)
			assert.Zero(t, fast.calls)
			assert.Zero(t, slow.calls)
		})
	}
}

func TestPipelineClassifyTextFastPathShortCircuits(t *testing.T) {
	want := model.Transaction{
		Amount:   50,
		Category: "Transporte",
		Kind:     model.KindExpense,
		Origin:   model.OriginRuleEngine,
	}
	fast := &stubFast{txn: want, handled: true}
	slow := &stubSlow{}
	pipeline := New(fast, slow, slog.Default())

	got, err := pipeline.ClassifyText(context.Background(), model.Request{Text: "Gastei 50 no Uber"})
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, 1, fast.calls)
	assert.Zero(t, slow.calls, "fast path success must not contact the remote adapter")
}

func TestPipelineClassifyTextFallsThrough(t *testing.T) {
	want := model.Transaction{
		Amount:   500,
		Category: "Outros",
		Kind:     model.KindExpense,
		Origin:   model.OriginRemoteModel,
	}
	fast := &stubFast{handled: false}
	slow := &stubSlow{txn: want}
	pipeline := New(fast, slow, slog.Default())

	got, err := pipeline.ClassifyText(context.Background(), model.Request{Text: "Comprei 100 dólares"})
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, 1, fast.calls)
	assert.Equal(t, 1, slow.calls)
}

func TestPipelineClassifyTextSlowPathError(t *testing.T) {
	fast := &stubFast{handled: false}
	slow := &stubSlow{err: common.ErrInferenceUnavailable}
	pipeline := New(fast, slow, slog.Default())

	_, err := pipeline.ClassifyText(context.Background(), model.Request{Text: "Comprei 100 dólares"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInferenceUnavailable)
}

func TestPipelineClassifyAudio(t *testing.T) {
	t.Run("empty audio", func(t *testing.T) {
		fast := &stubFast{}
		slow := &stubSlow{}
		pipeline := New(fast, slow, slog.Default())

		_, err := pipeline.ClassifyAudio(context.Background(), model.Request{})
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrEmptyInput)
		assert.Zero(t, slow.calls)
	})

	t.Run("audio always takes the slow path", func(t *testing.T) {
		want := model.Transaction{Amount: 20, Category: "Outros", Kind: model.KindExpense}
		fast := &stubFast{handled: true}
		slow := &stubSlow{txn: want}
		pipeline := New(fast, slow, slog.Default())

		got, err := pipeline.ClassifyAudio(context.Background(), model.Request{
			Text:  "leftover text is discarded",
			Audio: []byte{0x4f, 0x67, 0x67},
		})
		require.NoError(t, err)

		assert.Equal(t, want, got)
		assert.Zero(t, fast.calls)
		assert.Equal(t, 1, slow.calls)
		assert.Empty(t, slow.lastReq.Text)
	})
}
