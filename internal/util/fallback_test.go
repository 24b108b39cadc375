package util

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func attemptReturning(name string, value string, ok bool, err error, calls *[]string) Attempt[string] {
	return Attempt[string]{
		Name: name,
		Run: func(ctx context.Context) (string, bool, error) {
			*calls = append(*calls, name)

			return value, ok, err
		},
	}
}

func TestFirstOf_ReturnsFirstUsableResult(t *testing.T) {
	var calls []string

	result, ok := FirstOf(context.Background(), nil,
		attemptReturning("empty", "", false, nil, &calls),
		attemptReturning("hit", "second", true, nil, &calls),
		attemptReturning("never", "third", true, nil, &calls),
	)

	assert.True(t, ok)
	assert.Equal(t, "second", result)
	assert.Equal(t, []string{"empty", "hit"}, calls)
}

func TestFirstOf_SkipsFailedAttempts(t *testing.T) {
	var calls []string

	result, ok := FirstOf(context.Background(), nil,
		attemptReturning("broken", "ignored", true, errors.New("connection refused"), &calls),
		attemptReturning("filler", "filler", true, nil, &calls),
	)

	assert.True(t, ok)
	assert.Equal(t, "filler", result)
	assert.Equal(t, []string{"broken", "filler"}, calls)
}

func TestFirstOf_NothingUsable(t *testing.T) {
	var calls []string

	result, ok := FirstOf(context.Background(), nil,
		attemptReturning("a", "", false, nil, &calls),
		attemptReturning("b", "", false, errors.New("timeout"), &calls),
	)

	assert.False(t, ok)
	assert.Empty(t, result)
	assert.Len(t, calls, 2)
}

func TestFirstOf_StopsWhenContextDone(t *testing.T) {
	var calls []string
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := FirstOf(ctx, nil, attemptReturning("a", "x", true, nil, &calls))

	assert.False(t, ok)
	assert.Empty(t, calls)
}
