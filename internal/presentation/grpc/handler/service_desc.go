package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// CheckoutServiceName 決済サービスのフルネーム
	CheckoutServiceName = "coffee.v1.CheckoutService"
	// AdminServiceName 管理サービスのフルネーム
	AdminServiceName = "coffee.v1.AdminService"
)

// CheckoutServiceServer 決済サービスのサーバーインターフェース
type CheckoutServiceServer interface {
	CreatePayment(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	CheckStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// AdminServiceServer 管理サービスのサーバーインターフェース
type AdminServiceServer interface {
	IssueToken(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// unaryMethod google.protobuf.Structを入出力とするメソッド定義を作成
func unaryMethod[S any](service, method string, call func(S, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(S), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// CheckoutServiceDesc 決済サービスの定義
var CheckoutServiceDesc = grpc.ServiceDesc{
	ServiceName: CheckoutServiceName,
	HandlerType: (*CheckoutServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(CheckoutServiceName, "CreatePayment", CheckoutServiceServer.CreatePayment),
		unaryMethod(CheckoutServiceName, "CheckStatus", CheckoutServiceServer.CheckStatus),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coffee/v1/checkout.proto",
}

// AdminServiceDesc 管理サービスの定義
var AdminServiceDesc = grpc.ServiceDesc{
	ServiceName: AdminServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(AdminServiceName, "IssueToken", AdminServiceServer.IssueToken),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coffee/v1/admin.proto",
}

// RegisterCheckoutServiceServer 決済サービスを登録
func RegisterCheckoutServiceServer(s grpc.ServiceRegistrar, srv CheckoutServiceServer) {
	s.RegisterService(&CheckoutServiceDesc, srv)
}

// RegisterAdminServiceServer 管理サービスを登録
func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminServiceDesc, srv)
}
