package async

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWaitAll(t *testing.T) {
	errA := errors.New("a failed")
	errC := errors.New("c failed")

	err := WaitAll(
		Errable(func() error {
			time.Sleep(10 * time.Millisecond)
			return errA
		}),
		Errable(func() error { return nil }),
		Errable(func() error { return errC }),
	)

	assert.EqualError(t, err, "a failed, c failed", "expect errors in argument order")
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errC)

	assert.NoError(t, WaitAll(Errable(func() error { return nil })))
	assert.NoError(t, WaitAll())
}
