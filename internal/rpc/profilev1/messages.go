// Package profilev1 defines the loadprofile.v1.ProfileService gRPC contract.
//
// Messages travel as google.protobuf.Struct so the service needs no generated
// code; the typed Go structs below convert to and from that wire form.
package profilev1

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// GetProfileRequest selects readings by an exclusive window and optionally
// asks for a split by an inclusive daily range. Empty strings mean unset.
type GetProfileRequest struct {
	From      string
	To        string
	TimeRange string
}

// Point is one aggregated time-of-day value.
type Point struct {
	Seconds int
	Total   float64
}

// Split carries the range report. Costs are decimal strings.
type Split struct {
	Range       string
	Inside      float64
	Outside     float64
	InsideCost  string
	OutsideCost string
	Currency    string
}

type GetProfileResponse struct {
	Points   []Point
	Split    *Split
	Accepted int
	Skipped  int
}

func (r *GetProfileRequest) Proto() (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"from":       r.From,
		"to":         r.To,
		"time_range": r.TimeRange,
	})
}

func GetProfileRequestFromProto(s *structpb.Struct) (*GetProfileRequest, error) {
	if s == nil {
		return nil, fmt.Errorf("request is required")
	}
	f := s.GetFields()
	return &GetProfileRequest{
		From:      f["from"].GetStringValue(),
		To:        f["to"].GetStringValue(),
		TimeRange: f["time_range"].GetStringValue(),
	}, nil
}

func (r *GetProfileResponse) Proto() (*structpb.Struct, error) {
	points := make([]any, 0, len(r.Points))
	for _, p := range r.Points {
		points = append(points, map[string]any{
			"seconds": p.Seconds,
			"total":   p.Total,
		})
	}
	m := map[string]any{
		"points":   points,
		"accepted": r.Accepted,
		"skipped":  r.Skipped,
	}
	if r.Split != nil {
		m["split"] = map[string]any{
			"range":        r.Split.Range,
			"inside":       r.Split.Inside,
			"outside":      r.Split.Outside,
			"inside_cost":  r.Split.InsideCost,
			"outside_cost": r.Split.OutsideCost,
			"currency":     r.Split.Currency,
		}
	}
	return structpb.NewStruct(m)
}

func GetProfileResponseFromProto(s *structpb.Struct) (*GetProfileResponse, error) {
	if s == nil {
		return nil, fmt.Errorf("response is empty")
	}
	f := s.GetFields()

	out := &GetProfileResponse{
		Accepted: int(f["accepted"].GetNumberValue()),
		Skipped:  int(f["skipped"].GetNumberValue()),
	}
	for i, v := range f["points"].GetListValue().GetValues() {
		ps := v.GetStructValue()
		if ps == nil {
			return nil, fmt.Errorf("point %d: not an object", i)
		}
		pf := ps.GetFields()
		out.Points = append(out.Points, Point{
			Seconds: int(pf["seconds"].GetNumberValue()),
			Total:   pf["total"].GetNumberValue(),
		})
	}
	if ss := f["split"].GetStructValue(); ss != nil {
		sf := ss.GetFields()
		out.Split = &Split{
			Range:       sf["range"].GetStringValue(),
			Inside:      sf["inside"].GetNumberValue(),
			Outside:     sf["outside"].GetNumberValue(),
			InsideCost:  sf["inside_cost"].GetStringValue(),
			OutsideCost: sf["outside_cost"].GetStringValue(),
			Currency:    sf["currency"].GetStringValue(),
		}
	}
	return out, nil
}
