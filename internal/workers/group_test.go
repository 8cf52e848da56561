package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blocking(name string) Func {
	return Func{WorkerName: name, Fn: func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}}
}

func TestGroupStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Group{blocking("a"), blocking("b")}.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("group did not stop")
	}
}

func TestGroupFailureCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	failing := Func{WorkerName: "api", Fn: func(context.Context) error { return boom }}

	err := Group{failing, blocking("bot")}.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "api: boom")
}

func TestGroupCollectsAllErrors(t *testing.T) {
	fail := func(name string) Func {
		return Func{WorkerName: name, Fn: func(ctx context.Context) error {
			<-ctx.Done()
			return errors.New(name + " failed")
		}}
	}
	first := Func{WorkerName: "first", Fn: func(context.Context) error { return errors.New("first failed") }}

	err := Group{first, fail("second"), fail("third")}.Run(context.Background())

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)
}
