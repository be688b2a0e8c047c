package grpcserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/milad/loadprofile/internal/rpc/profilev1"
	"github.com/milad/loadprofile/internal/service"
)

var _ profilev1.ProfileServiceServer = (*Server)(nil)

type Server struct {
	svc *service.ProfileService
}

func New(svc *service.ProfileService) *Server {
	return &Server{svc: svc}
}

func (s *Server) GetProfile(ctx context.Context, req *profilev1.GetProfileRequest) (*profilev1.GetProfileResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	q, err := service.ParseQuery(req.From, req.To, req.TimeRange)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	res, err := s.svc.Profile(ctx, q)
	if err != nil {
		if service.IsInvalidArgument(err) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		if ctx.Err() != nil {
			return nil, status.FromContextError(ctx.Err()).Err()
		}
		return nil, status.Error(codes.Internal, "internal error")
	}

	out := &profilev1.GetProfileResponse{
		Points:   make([]profilev1.Point, 0, len(res.Profile.Points)),
		Accepted: res.Accepted,
		Skipped:  res.Skipped,
	}
	for _, p := range res.Profile.Points {
		out.Points = append(out.Points, profilev1.Point{Seconds: p.Time.Seconds(), Total: p.Total})
	}
	if sp := res.Split; sp != nil {
		out.Split = &profilev1.Split{
			Range:       sp.Range.String(),
			Inside:      sp.Inside,
			Outside:     sp.Outside,
			InsideCost:  sp.InsideCost.String(),
			OutsideCost: sp.OutsideCost.String(),
			Currency:    sp.Currency,
		}
	}
	return out, nil
}
