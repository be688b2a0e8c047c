package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/milad/loadprofile/internal/domain"
	"github.com/milad/loadprofile/internal/rpc/profilev1"
)

type pointJSON struct {
	Time    string  `json:"time"`
	Seconds int     `json:"seconds"`
	Total   float64 `json:"total"`
}

type splitJSON struct {
	Range       string  `json:"range"`
	InsideKWh   float64 `json:"insideKWh"`
	OutsideKWh  float64 `json:"outsideKWh"`
	InsideCost  string  `json:"insideCost"`
	OutsideCost string  `json:"outsideCost"`
	Currency    string  `json:"currency"`
}

type profileResponseJSON struct {
	Points   []pointJSON `json:"points"`
	Split    *splitJSON  `json:"split,omitempty"`
	Accepted int         `json:"accepted"`
	Skipped  int         `json:"skipped"`
}

type apiErrorJSON struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func toProfileJSON(resp *profilev1.GetProfileResponse) profileResponseJSON {
	out := profileResponseJSON{
		Points:   make([]pointJSON, 0, len(resp.Points)),
		Accepted: resp.Accepted,
		Skipped:  resp.Skipped,
	}
	for _, p := range resp.Points {
		out.Points = append(out.Points, pointJSON{
			Time:    domain.TimeOfDay(p.Seconds).String(),
			Seconds: p.Seconds,
			Total:   p.Total,
		})
	}
	if sp := resp.Split; sp != nil {
		out.Split = &splitJSON{
			Range:       sp.Range,
			InsideKWh:   sp.Inside,
			OutsideKWh:  sp.Outside,
			InsideCost:  sp.InsideCost,
			OutsideCost: sp.OutsideCost,
			Currency:    sp.Currency,
		}
	}
	return out
}
