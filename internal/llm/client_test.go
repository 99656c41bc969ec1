package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedutinova/xpb3parser/internal/common"
)

type fakeCompleter struct {
	calls   int
	system  string
	prompt  string
	content string
	err     error
}

func (f *fakeCompleter) Provider() string { return "fake" }

func (f *fakeCompleter) Complete(ctx context.Context, system, prompt string) (*Completion, error) {
	f.calls++
	f.system = system
	f.prompt = prompt
	if f.err != nil {
		return nil, f.err
	}
	return &Completion{Content: f.content, Model: "fake-model", TokensUsed: 42}, nil
}

func TestExtractFields_EmptyTextSkipsModel(t *testing.T) {
	fc := &fakeCompleter{}
	c := NewClient(fc, MaxTextChars)

	_, err := c.ExtractFields(context.Background(), "")

	require.ErrorIs(t, err, common.ErrEmptyText)
	assert.Equal(t, 0, fc.calls)
}

func TestExtractFields_ReturnsContentVerbatim(t *testing.T) {
	fc := &fakeCompleter{content: "```json\n" + validAnswer + "\n```"}
	c := NewClient(fc, MaxTextChars)

	res, err := c.ExtractFields(context.Background(), "Nr. nota 12345678")
	require.NoError(t, err)

	assert.Equal(t, 1, fc.calls)
	assert.Equal(t, SystemPrompt, fc.system)
	assert.Contains(t, fc.prompt, "Nr. nota 12345678")
	assert.Equal(t, fc.content, res.Content)
	assert.Equal(t, "fake-model", res.Model)
	assert.Equal(t, 42, res.TokensUsed)
	assert.True(t, res.Fields.Parsed())
}

func TestExtractFields_TruncatesText(t *testing.T) {
	fc := &fakeCompleter{content: "texto livre"}
	c := NewClient(fc, 10)

	res, err := c.ExtractFields(context.Background(), "0123456789ABCDEF")
	require.NoError(t, err)

	assert.Contains(t, fc.prompt, "0123456789")
	assert.NotContains(t, fc.prompt, "ABCDEF")
	assert.False(t, res.Fields.Parsed())
	assert.Equal(t, "texto livre", res.Content)
}

func TestExtractFields_DefaultLimit(t *testing.T) {
	fc := &fakeCompleter{content: "{}"}
	c := NewClient(fc, 0)

	_, err := c.ExtractFields(context.Background(), strings.Repeat("x", MaxTextChars+1))
	require.NoError(t, err)

	assert.Contains(t, fc.prompt, strings.Repeat("x", MaxTextChars))
	assert.NotContains(t, fc.prompt, strings.Repeat("x", MaxTextChars+1))
}

func TestExtractFields_ModelErrorNotRetried(t *testing.T) {
	cause := common.WrapModelCall("fake", errors.New("connection reset"))
	fc := &fakeCompleter{err: cause}
	c := NewClient(fc, MaxTextChars)

	_, err := c.ExtractFields(context.Background(), "texto")

	require.ErrorIs(t, err, cause)
	assert.True(t, common.IsModelCall(err))
	assert.Equal(t, 1, fc.calls)
}
