package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/JunasVee/dynamits-driver/internal/domain"
	apperrors "github.com/JunasVee/dynamits-driver/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, zap.NewNop()), srv
}

func TestListPackages_UnwrapsEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/packages", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"p1","status":"pending","sender_latitude":"1.0","sender_longitude":2.0}]}`))
	})

	packages, err := client.ListPackages(context.Background())

	assert.NoError(t, err)
	assert.Len(t, packages, 1)
	assert.Equal(t, "p1", packages[0].ID)
	assert.Equal(t, domain.PackageStatusPending, packages[0].Status)
	assert.Equal(t, domain.Coordinate("1.0"), packages[0].SenderLatitude)
	assert.Equal(t, domain.Coordinate("2.0"), packages[0].SenderLongitude)
}

func TestListPackages_RemoteFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := client.ListPackages(context.Background())

	assert.Error(t, err)
	ge, ok := apperrors.IsGatewayError(err)
	assert.True(t, ok, "expected GatewayError, got %T", err)
	assert.Equal(t, http.StatusBadGateway, ge.Status)
	assert.Equal(t, "list packages", ge.Op)
}

func TestListPackages_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	client := NewClient(srv.URL, time.Second, zap.NewNop())

	_, err := client.ListPackages(context.Background())

	ge, ok := apperrors.IsGatewayError(err)
	assert.True(t, ok)
	assert.Equal(t, 0, ge.Status)
	assert.Error(t, ge.Cause)
}

func TestUpdatePackage_SendsEveryField(t *testing.T) {
	var received map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/packages/p1", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"data":{"id":"p1","status":"shipping"}}`))
	})

	pkg := domain.Package{
		ID:              "p1",
		Description:     "documents",
		Weight:          0.4,
		Price:           15000,
		Status:          domain.PackageStatusShipping,
		SenderName:      "Citra",
		SenderPhone:     "+62833333333",
		SenderAddress:   "Jl. Basuki Rahmat 10",
		SenderLatitude:  "-7.265",
		SenderLongitude: "112.742",
		ReceiverName:    "Dewi",
		ReceiverPhone:   "+62844444444",
		ReceiverAddress: "Jl. Mayjen Sungkono 5",
	}

	updated, err := client.UpdatePackage(context.Background(), pkg)

	assert.NoError(t, err)
	assert.Equal(t, domain.PackageStatusShipping, updated.Status)

	// Full replace: the remote nulls out anything omitted, so every field
	// must be on the wire.
	for _, field := range []string{
		"id", "description", "weight", "price", "status",
		"sender_name", "sender_phone", "sender_address", "sender_latitude", "sender_longitude",
		"receiver_name", "receiver_phone", "receiver_address", "receiver_latitude", "receiver_longitude",
	} {
		assert.Contains(t, received, field)
	}
	assert.Equal(t, "shipping", received["status"])
	assert.Equal(t, "documents", received["description"])
}

func TestUpdatePackage_RequiresID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.UpdatePackage(context.Background(), domain.Package{})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestCreateOrder_LinksPackageAndDriver(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/orders", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "p1", body["packageId"])
		assert.Equal(t, "d1", body["driverId"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"o1","status":"shipping","driverId":"d1"}}`))
	})

	order, err := client.CreateOrder(context.Background(), "p1", "d1")

	assert.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, domain.OrderStatusShipping, order.Status)
}

func TestUpdateOrder_MarkDone(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/orders/o1", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "d1", body["driverId"])
		assert.Equal(t, "done", body["status"])

		w.Write([]byte(`{"data":{"id":"o1","status":"done","driverId":"d1"}}`))
	})

	order, err := client.UpdateOrder(context.Background(), "o1", "d1", domain.OrderStatusDone)

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDone, order.Status)
}

func TestLogin_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "driver@dynamits.id", body["email"])

		w.Write([]byte(`{"status":true,"data":{"token":"tok-1","user":{"driverId":"d1","name":"Eka","email":"driver@dynamits.id"}}}`))
	})

	sess, err := client.Login(context.Background(), "driver@dynamits.id", "secret")

	assert.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, "d1", sess.DriverID())
	assert.Equal(t, "Eka", sess.User.Name)
}

func TestLogin_RejectedWithRemoteMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"invalid credentials"}`))
	})

	_, err := client.Login(context.Background(), "driver@dynamits.id", "wrong")

	ge, ok := apperrors.IsGatewayError(err)
	assert.True(t, ok)
	assert.Equal(t, "invalid credentials", ge.Body)
}

func TestLogin_RequiresCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.Login(context.Background(), "", "")

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}
