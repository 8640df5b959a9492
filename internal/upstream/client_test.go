package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"opsdash/internal/upstream"
)

func TestClient_OrderDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/ORD1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"oid":"ORD1","customer_name":"Acme99","order_status":"packaging_done",
			"items":[{"oiid":"OI1","product_name":"Mango","net_weight":10,"num_boxes":"10 boxes"}]
		}`))
	}))
	defer srv.Close()

	c := upstream.NewClient(srv.URL, time.Second)
	o, err := c.OrderDetail(context.Background(), "ORD1")
	require.NoError(t, err)
	require.Equal(t, "Acme99", o.CustomerName)
	require.Len(t, o.Items, 1)
	require.Equal(t, 10, o.Items[0].TotalBoxes())
}

func TestClient_ReferenceLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/drivers/present":
			_, _ = w.Write([]byte(`[{"did":"d1","driver_name":"Kumar","driver_id":"DRV-01","vehicle_number":"TN09AB1234"}]`))
		case "/api/airports":
			_, _ = w.Write([]byte(`[{"aid":"a1","name":"Chennai","city":"Chennai"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := upstream.NewClient(srv.URL, time.Second)

	drivers, err := c.PresentDrivers(context.Background())
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "DRV-01", drivers[0].DriverId)

	airports, err := c.Airports(context.Background())
	require.NoError(t, err)
	require.Len(t, airports, 1)
}

func TestClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := upstream.NewClient(srv.URL, time.Second)
	_, err := c.PresentDrivers(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}
