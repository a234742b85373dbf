package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService(nil, "test-secret", time.Hour)

	t.Run("dealer token carries the dealership", func(t *testing.T) {
		dealerID := uuid.New()
		user := &User{ID: uuid.New(), Role: RoleDealer, DealerID: &dealerID}

		token, err := svc.signToken(user)
		assert.NoError(t, err)

		authCtx, err := svc.ParseToken(token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, authCtx.UserID)
		assert.Equal(t, RoleDealer, authCtx.Role)
		assert.Equal(t, &dealerID, authCtx.DealerID)
		assert.True(t, authCtx.IsDealer())
		assert.False(t, authCtx.IsManufacturer())
	})

	t.Run("manufacturer token has no dealership", func(t *testing.T) {
		user := &User{ID: uuid.New(), Role: RoleManufacturer}

		token, err := svc.signToken(user)
		assert.NoError(t, err)

		authCtx, err := svc.ParseToken(token)
		assert.NoError(t, err)
		assert.Nil(t, authCtx.DealerID)
		assert.True(t, authCtx.IsManufacturer())
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewService(nil, "other-secret", time.Hour)
		user := &User{ID: uuid.New(), Role: RoleManufacturer}

		token, err := other.signToken(user)
		assert.NoError(t, err)

		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		expired := NewService(nil, "test-secret", -time.Minute)
		user := &User{ID: uuid.New(), Role: RoleDealer}

		token, err := expired.signToken(user)
		assert.NoError(t, err)

		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := svc.ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAdminCountsAsManufacturer(t *testing.T) {
	admin := &AuthContext{Role: RoleAdmin}
	assert.True(t, admin.IsManufacturer())
	assert.False(t, admin.IsDealer())
}
