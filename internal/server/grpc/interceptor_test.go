package grpc

import (
	"context"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	pb "github.com/dmitrijs2005/shopkeeper/internal/proto"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func withAuthorization(value string) context.Context {
	md := metadata.New(map[string]string{common.AuthorizationHeaderName: value})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethodsPassThrough(t *testing.T) {
	s := newServer(&fakeLogins{authErr: common.ErrInvalidToken})

	for _, method := range []string{pb.PingMethod, pb.LoginMethod} {
		called := false
		h := func(ctx context.Context, req interface{}) (interface{}, error) {
			called = true
			return "ok", nil
		}

		resp, err := s.sessionInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: method}, h)
		require.NoError(t, err)
		assert.True(t, called, method)
		assert.Equal(t, "ok", resp)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newServer(&fakeLogins{})

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.sessionInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: pb.WhoAmIMethod}, h)
	st := status.Convert(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, "missing token", st.Message())
}

func TestInterceptor_RejectedTokens(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{common.ErrInvalidToken, codes.Unauthenticated},
		{common.ErrTokenExpired, codes.Unauthenticated},
		{common.ErrWrongTokenPurpose, codes.Unauthenticated},
		{common.ErrSessionNotFound, codes.Unauthenticated},
		{fmt.Errorf("%w: redis down", common.ErrStoreUnavailable), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			s := newServer(&fakeLogins{authErr: tt.err})
			h := func(ctx context.Context, req interface{}) (interface{}, error) {
				t.Fatal("handler should not be called for a rejected token")
				return nil, nil
			}

			_, err := s.sessionInterceptor(withAuthorization("tok"), nil, &grpc.UnaryServerInfo{FullMethod: pb.LogoutMethod}, h)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestInterceptor_ValidToken_SetsSession(t *testing.T) {
	session := &models.Session{UserID: "u-1", BasketID: "7"}
	s := newServer(&fakeLogins{session: session})

	for _, header := range []string{"tok", "Bearer tok", "bearer  tok"} {
		var gotSession *models.Session
		var gotToken string
		h := func(ctx context.Context, req interface{}) (interface{}, error) {
			gotSession, _ = sessionFromContext(ctx)
			gotToken, _ = tokenFromContext(ctx)
			return "ok", nil
		}

		resp, err := s.sessionInterceptor(withAuthorization(header), nil, &grpc.UnaryServerInfo{FullMethod: pb.WhoAmIMethod}, h)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp)
		assert.Same(t, session, gotSession)
		assert.Equal(t, "tok", gotToken, header)
	}
}
