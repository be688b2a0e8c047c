package httpserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/milad/loadprofile/internal/repo/csvrepo"
	"github.com/milad/loadprofile/internal/report"
	"github.com/milad/loadprofile/internal/report/chart"
	"github.com/milad/loadprofile/internal/rpc/profilev1"
	"github.com/milad/loadprofile/internal/service"
	grpcserver "github.com/milad/loadprofile/internal/transport/grpc"
)

// This is a light end-to-end test:
// HTTP handler -> gRPC client -> in-memory gRPC server -> service -> repo.
func TestHTTP_ToGRPC_EndToEnd(t *testing.T) {
	t.Parallel()

	readings, err := csvrepo.ParseLoadProfileCSV(strings.NewReader(strings.TrimSpace(`
"01/08/2024","07:00",2.0
"02/08/2024","07:00",3.0
"01/08/2024","20:00",1.0
"31/07/2024","17:00",9.0
`)))
	require.NoError(t, err)
	svc := service.NewProfileService(csvrepo.New(readings), report.NewReporter(report.DefaultTariff()))

	lis := bufconn.Listen(1024 * 1024)
	g := grpc.NewServer()
	profilev1.RegisterProfileServiceServer(g, grpcserver.New(svc))
	go func() { _ = g.Serve(lis) }()
	t.Cleanup(g.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return lis.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	httpSrv := New(profilev1.NewProfileServiceClient(conn), chart.Options{}, nil)

	// from is exclusive: the 31/07 reading is dropped.
	rr := serve(httpSrv, "/api/profile?from=20240801T000000&range=07:00-17:00")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got profileResponseJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Points, 2)
	assert.Equal(t, "07:00:00", got.Points[0].Time)
	assert.Equal(t, 5.0, got.Points[0].Total)
	require.NotNil(t, got.Split)
	assert.Equal(t, 5.0, got.Split.InsideKWh)
	assert.Equal(t, 1.0, got.Split.OutsideKWh)
	assert.Equal(t, "2.626", got.Split.InsideCost)
	assert.Equal(t, "0.5252", got.Split.OutsideCost)
	assert.Equal(t, 1, got.Skipped)
}
