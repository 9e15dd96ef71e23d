package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	pb "github.com/dmitrijs2005/shopkeeper/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const statusAuthenticated = "authenticated"

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.AuthServiceClient

	mu    sync.RWMutex
	token string
}

func withAuthorization(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, "Bearer "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) sessionToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *GRPCClient) setSessionToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// sessionInterceptor attaches the session token, if any, to outgoing calls.
func (s *GRPCClient) sessionInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.sessionToken(); token != "" && method != pb.LoginMethod {
		ctx = withAuthorization(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

func NewGRPCClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.sessionInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewAuthServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &structpb.Struct{})
	if err != nil {
		return s.mapError(err)
	}

	if pb.StringField(resp, pb.FieldStatus) != "OK" {
		return ErrUnavailable
	}

	return nil

}

// Login sends the credentials and, on a full login, remembers the session
// token for later calls. The password is not retained.
func (s *GRPCClient) Login(ctx context.Context, email string, password []byte) (*LoginOutcome, error) {

	req := pb.NewStringStruct(map[string]string{
		pb.FieldEmail:    email,
		pb.FieldPassword: string(password),
	})

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	out := &LoginOutcome{
		Status:   pb.StringField(resp, pb.FieldStatus),
		Token:    pb.StringField(resp, pb.FieldToken),
		BasketID: pb.StringField(resp, pb.FieldBasketID),
		Email:    pb.StringField(resp, pb.FieldUserEmail),
		Ticket:   pb.StringField(resp, pb.FieldTmpToken),
	}

	if out.Status == statusAuthenticated {
		s.setSessionToken(out.Token)
	}

	return out, nil

}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*Identity, error) {

	if s.sessionToken() == "" {
		return nil, ErrNotLoggedIn
	}

	resp, err := s.client.WhoAmI(ctx, &structpb.Struct{})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &Identity{
		UserID:    pb.StringField(resp, pb.FieldUserID),
		Email:     pb.StringField(resp, pb.FieldUserEmail),
		Role:      pb.StringField(resp, pb.FieldRole),
		BasketID:  pb.StringField(resp, pb.FieldBasketID),
		ExpiresAt: pb.StringField(resp, pb.FieldExpiresAt),
	}, nil

}

func (s *GRPCClient) Logout(ctx context.Context) error {

	if s.sessionToken() == "" {
		return ErrNotLoggedIn
	}

	if _, err := s.client.Logout(ctx, &structpb.Struct{}); err != nil {
		return s.mapError(err)
	}

	s.setSessionToken("")
	return nil

}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
