package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunnerWait(t *testing.T) {
	errBoom := errors.New("boom")
	runner := NewRunner()
	runner.Go(
		RunnableFunc(func(ctx context.Context) error { return nil }),
		RunnableFunc(func(ctx context.Context) error { return errBoom }),
		RunnableFunc(func(ctx context.Context) error { return context.Canceled }),
	)
	err := runner.Wait()
	require.Error(t, err)
	require.True(t, errors.Is(err, errBoom))
	var aggregated *AggregatedError
	require.True(t, errors.As(err, &aggregated))
	require.Len(t, aggregated.Errors, 1)
}

func TestRunnerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	runner := NewRunnerWith(ctx)
	startedCh := make(chan struct{})
	runner.Go(NamedRun("sleeper", RunnableFunc(func(ctx context.Context) error {
		close(startedCh)
		<-ctx.Done()
		return ctx.Err()
	})))
	select {
	case <-startedCh:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("runnable not started")
	}
	cancel()
	require.NoError(t, runner.Wait())
}

func TestRunWithContextCloser(t *testing.T) {
	closedCh := make(chan struct{})
	blockCh := make(chan struct{})
	closer := closeFunc(func() error {
		close(closedCh)
		close(blockCh)
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- RunWithContextCloser(ctx, closer, func() error {
			<-blockCh
			return errors.New("stream closed")
		})
	}()
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("RunWithContextCloser did not return")
	}
	select {
	case <-closedCh:
	default:
		t.Fatal("closer not closed")
	}
}

func TestSleep(t *testing.T) {
	require.NoError(t, Sleep(context.Background(), time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Equal(t, context.Canceled, Sleep(ctx, time.Hour))
}

type closeFunc func() error

func (f closeFunc) Close() error { return f() }
