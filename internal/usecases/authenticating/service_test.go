package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

func TestService_TokenRoundTrip(t *testing.T) {
	service := NewService(config.Auth{Secret: "s3cret"})

	token, err := service.GenerateToken("ops", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestService_ValidateToken(t *testing.T) {
	service := &Service{secret: []byte("s3cret"), clock: time.Now}

	expired := &Service{secret: []byte("s3cret"), clock: func() time.Time { return time.Now().Add(-48 * time.Hour) }}
	old, err := expired.GenerateToken("ops", domain.RoleViewer, time.Hour)
	require.NoError(t, err)
	_, err = service.ValidateToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := &Service{secret: []byte("other"), clock: time.Now}
	forged, err := other.GenerateToken("ops", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)
	_, err = service.ValidateToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{Role: domain.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = service.ValidateToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_GenerateToken_Errors(t *testing.T) {
	_, err := NewService(config.Auth{}).GenerateToken("ops", domain.RoleAdmin, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = NewService(config.Auth{Secret: "s"}).GenerateToken("ops", "root", time.Hour)
	assert.ErrorIs(t, err, ErrInvalidRole)
}
