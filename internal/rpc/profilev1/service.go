package profilev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName          = "loadprofile.v1.ProfileService"
	GetProfileFullMethod = "/" + ServiceName + "/GetProfile"
)

// ProfileServiceServer is the server API for ProfileService.
type ProfileServiceServer interface {
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
}

// ProfileServiceClient is the client API for ProfileService.
type ProfileServiceClient interface {
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProfileServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetProfile",
			Handler:    getProfileHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "loadprofile/v1/profile.proto",
}

func RegisterProfileServiceServer(s grpc.ServiceRegistrar, srv ProfileServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func getProfileHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	call := func(ctx context.Context, req any) (any, error) {
		typed, err := GetProfileRequestFromProto(req.(*structpb.Struct))
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		resp, err := srv.(ProfileServiceServer).GetProfile(ctx, typed)
		if err != nil {
			return nil, err
		}
		out, err := resp.Proto()
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		return out, nil
	}
	if interceptor == nil {
		return call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GetProfileFullMethod,
	}
	return interceptor(ctx, in, info, call)
}

type profileServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProfileServiceClient(cc grpc.ClientConnInterface) ProfileServiceClient {
	return &profileServiceClient{cc: cc}
}

func (c *profileServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	req, err := in.Proto()
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetProfileFullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	resp, err := GetProfileResponseFromProto(out)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}
