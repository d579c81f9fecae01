package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
)

type fakeIdempotencyRepo struct {
	repository.IdempotencyRepository
	stored []*entity.IdempotencyKey
	cached *entity.IdempotencyKey
}

func (f *fakeIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	if f.cached != nil && f.cached.Key == key && f.cached.UserID == userID {
		return f.cached, nil
	}
	return nil, nil
}

func (f *fakeIdempotencyRepo) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	f.stored = append(f.stored, ikey)
	return nil
}

func idempotencyRouter(repo *fakeIdempotencyRepo, userID uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/sales",
		func(c *gin.Context) { c.Set("user_id", userID) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		handler,
	)
	return r
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	repo := &fakeIdempotencyRepo{}
	userID := uuid.New()

	fail := true
	r := idempotencyRouter(repo, userID, func(c *gin.Context) {
		if fail {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	req := httptest.NewRequest("POST", "/sales", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, repo.stored, "failed responses must not be cached")

	// A retry with the same key reaches the handler and succeeds
	fail = false
	req = httptest.NewRequest("POST", "/sales", nil)
	req.Header.Set(IdempotencyKeyHeader, "key-1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.stored, 1)
	assert.Equal(t, http.StatusCreated, repo.stored[0].ResponseCode)
}

func TestIdempotencyReplaysCachedSuccess(t *testing.T) {
	repo := &fakeIdempotencyRepo{}
	userID := uuid.New()

	calls := 0
	r := idempotencyRouter(repo, userID, func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/sales", nil)
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
		repo.cached = repo.stored[0]
	}

	assert.Equal(t, 1, calls, "the second request must be served from cache")
	require.Len(t, repo.stored, 1)
}

func TestIdempotencyRequiresKey(t *testing.T) {
	r := idempotencyRouter(&fakeIdempotencyRepo{}, uuid.New(), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	})

	req := httptest.NewRequest("POST", "/sales", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
