package grpc

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	pb "github.com/dmitrijs2005/shopkeeper/internal/proto"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	sessionKey ctxKey = "session"
	tokenKey   ctxKey = "token"
)

// protectedMethods require a live session token.
var protectedMethods = map[string]bool{
	pb.WhoAmIMethod: true,
	pb.LogoutMethod: true,
}

func sessionFromContext(ctx context.Context) (*models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*models.Session)
	return s, ok && s != nil
}

func tokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}
	token := strings.TrimSpace(values[0])
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// toStatus maps session errors onto gRPC codes. Only store outages are
// reported as internal; everything else is the caller's problem.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrWrongTokenPurpose):
		return status.Error(codes.Unauthenticated, common.ErrWrongTokenPurpose.Error())
	case errors.Is(err, common.ErrStoreUnavailable), errors.Is(err, common.ErrorInternal):
		return status.Error(codes.Internal, "internal error")
	default:
		return status.Error(codes.Unauthenticated, "invalid session")
	}
}

func (s *GRPCServer) sessionInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if protectedMethods[info.FullMethod] {

		token := bearerToken(ctx)
		if len(token) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing token")
		}

		session, err := s.logins.Authenticate(ctx, token)
		if err != nil {
			s.logger.Debug(ctx, "session rejected", "method", info.FullMethod, "error", err)
			return nil, toStatus(err)
		}

		ctx = context.WithValue(ctx, sessionKey, session)
		ctx = context.WithValue(ctx, tokenKey, token)

	}

	return handler(ctx, req)
}
