package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	pb "github.com/dmitrijs2005/shopkeeper/internal/proto"
	"github.com/dmitrijs2005/shopkeeper/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

func (s *GRPCServer) Ping(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	return pb.NewStringStruct(map[string]string{pb.FieldStatus: "OK"}), nil

}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	email := pb.StringField(req, pb.FieldEmail)
	password := pb.StringField(req, pb.FieldPassword)

	result, err := s.logins.Login(ctx, email, password)

	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			return nil, status.Error(codes.Unauthenticated, common.InvalidCredentialsMessage)
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	if result.Status == services.StatusSecondFactorRequired {
		return pb.NewStringStruct(map[string]string{
			pb.FieldStatus:   result.Status,
			pb.FieldTmpToken: result.Ticket,
		}), nil
	}

	return pb.NewStringStruct(map[string]string{
		pb.FieldStatus:    result.Status,
		pb.FieldToken:     result.Token,
		pb.FieldBasketID:  result.BasketID,
		pb.FieldUserEmail: result.Email,
	}), nil

}

func (s *GRPCServer) WhoAmI(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	session, ok := sessionFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing session")
	}

	return pb.NewStringStruct(map[string]string{
		pb.FieldUserID:    session.UserID,
		pb.FieldUserEmail: session.Email,
		pb.FieldRole:      session.Role,
		pb.FieldBasketID:  session.BasketID,
		pb.FieldExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
	}), nil

}

func (s *GRPCServer) Logout(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {

	token, ok := tokenFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	if err := s.logins.Logout(ctx, token); err != nil {
		return nil, toStatus(err)
	}

	return pb.NewStringStruct(map[string]string{pb.FieldStatus: "OK"}), nil

}
