package httpserver

import (
	"context"

	"google.golang.org/grpc"

	"github.com/milad/loadprofile/internal/rpc/profilev1"
)

// ProfileClient is the small subset of the gRPC client we need, to keep tests simple.
type ProfileClient interface {
	GetProfile(ctx context.Context, in *profilev1.GetProfileRequest, opts ...grpc.CallOption) (*profilev1.GetProfileResponse, error)
}
