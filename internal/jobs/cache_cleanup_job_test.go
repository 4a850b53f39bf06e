package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCacheCleaner struct {
	mock.Mock
}

func (m *mockCacheCleaner) DeleteExpired(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ CacheCleaner = (*mockCacheCleaner)(nil)

func TestCacheCleanupJob_RunsOnTick(t *testing.T) {
	repo := new(mockCacheCleaner)
	repo.On("DeleteExpired", mock.Anything).Return(nil)

	job := NewCacheCleanupJob(repo, logrus.New(), 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 35*time.Millisecond)
	defer cancel()

	job.Start(ctx)

	repo.AssertExpectations(t)
	assert.GreaterOrEqual(t, len(repo.Calls), 1)
}

func TestCacheCleanupJob_StopEndsLoop(t *testing.T) {
	repo := new(mockCacheCleaner)
	repo.On("DeleteExpired", mock.Anything).Return(nil).Maybe()

	job := NewCacheCleanupJob(repo, logrus.New(), 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()

	time.Sleep(15 * time.Millisecond)
	job.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job did not stop after Stop() was called")
	}
}
