// Package proto declares the shopkeeper.auth.v1.AuthService gRPC contract.
//
// Requests and responses are google.protobuf.Struct messages, so the
// descriptor below is written by hand instead of generated. Field names
// used in the payloads are listed as constants.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "shopkeeper.auth.v1.AuthService"

// Full method names, as seen by interceptors.
const (
	PingMethod   = "/" + ServiceName + "/Ping"
	LoginMethod  = "/" + ServiceName + "/Login"
	WhoAmIMethod = "/" + ServiceName + "/WhoAmI"
	LogoutMethod = "/" + ServiceName + "/Logout"
)

// Payload fields.
const (
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldStatus    = "status"
	FieldToken     = "token"
	FieldBasketID  = "bid"
	FieldUserEmail = "umail"
	FieldTmpToken  = "tmpToken"
	FieldUserID    = "id"
	FieldRole      = "role"
	FieldExpiresAt = "expiresAt"
)

// AuthServiceServer is the server API for AuthService.
type AuthServiceServer interface {
	Ping(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	WhoAmI(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Logout(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(AuthServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(call unaryCall, fullMethod string) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AuthServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AuthServiceDesc is the grpc.ServiceDesc for AuthService.
var AuthServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: unaryHandler(AuthServiceServer.Ping, PingMethod)},
		{MethodName: "Login", Handler: unaryHandler(AuthServiceServer.Login, LoginMethod)},
		{MethodName: "WhoAmI", Handler: unaryHandler(AuthServiceServer.WhoAmI, WhoAmIMethod)},
		{MethodName: "Logout", Handler: unaryHandler(AuthServiceServer.Logout, LogoutMethod)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shopkeeper/auth/v1/auth.proto",
}

func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&AuthServiceDesc, srv)
}

// AuthServiceClient is the client API for AuthService.
type AuthServiceClient interface {
	Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	WhoAmI(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Logout(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type authServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthServiceClient(cc grpc.ClientConnInterface) AuthServiceClient {
	return &authServiceClient{cc: cc}
}

func (c *authServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authServiceClient) Ping(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PingMethod, in, opts)
}

func (c *authServiceClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LoginMethod, in, opts)
}

func (c *authServiceClient) WhoAmI(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, WhoAmIMethod, in, opts)
}

func (c *authServiceClient) Logout(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, LogoutMethod, in, opts)
}

// StringField reads a string field, returning "" when s or the field is
// missing or of another kind.
func StringField(s *structpb.Struct, name string) string {
	return s.GetFields()[name].GetStringValue()
}

// NewStringStruct builds a Struct whose fields are all strings.
func NewStringStruct(fields map[string]string) *structpb.Struct {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		out.Fields[k] = structpb.NewStringValue(v)
	}
	return out
}
