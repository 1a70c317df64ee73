package selector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelector_String(t *testing.T) {
	assert.Equal(t, `input[type="email"]`, CSS(`input[type="email"]`).String())
	assert.Equal(t, `button:has-text("Sign Up")`, WithText("button", "Sign Up").String())
}

func TestFirst_ReturnsEarliestMatch(t *testing.T) {
	chain := Chain{CSS("a"), CSS("b"), CSS("c")}
	var probed []string

	got, sel, err := First(context.Background(), chain, func(_ context.Context, s Selector) (string, error) {
		probed = append(probed, s.CSS)
		if s.CSS == "a" {
			return "", errors.New("boom")
		}
		return "hit-" + s.CSS, nil
	})

	require.NoError(t, err)
	assert.Equal(t, "hit-b", got)
	assert.Equal(t, "b", sel.CSS)
	assert.Equal(t, []string{"a", "b"}, probed, "probing must stop at the first hit")
}

func TestFirst_Exhausted(t *testing.T) {
	_, _, err := First(context.Background(), SubmitButtons, func(context.Context, Selector) (int, error) {
		return 0, errors.New("miss")
	})
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestFirst_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, _, err := First(ctx, Forms, func(context.Context, Selector) (int, error) {
		calls++
		return 1, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestChain_WithKeepsOrderAndDoesNotAlias(t *testing.T) {
	c := Forms.With(AnyEmailForm)

	require.Len(t, c, len(Forms)+1)
	assert.Equal(t, AnyEmailForm, c[len(c)-1])
	assert.Equal(t, Forms[0], c[0])
	assert.Len(t, Forms, 9)
}
