package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/notemarket/internal/api"
	"github.com/dmitrijs2005/notemarket/internal/common"
	"github.com/dmitrijs2005/notemarket/internal/logging"
	"github.com/dmitrijs2005/notemarket/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// helper to build server
func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", logging.Nop(), Services{}, secret)
}

func incoming(token string) context.Context {
	md := metadata.New(map[string]string{common.AccessTokenHeaderName: token})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestInterceptor_PublicMethods_AllowWithoutToken(t *testing.T) {
	s := newTestServer("secret")

	for _, m := range []string{api.MethodPing, api.MethodRegister, api.MethodLogin, api.MethodRefreshToken} {
		info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(m)}
		handlerCalled := false

		h := func(ctx context.Context, req any) (any, error) {
			handlerCalled = true
			return "ok", nil
		}

		resp, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", m, err)
		}
		if !handlerCalled || resp != "ok" {
			t.Fatalf("%s: handler not called", m)
		}
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodPurchase)}

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", status.Code(err))
	}
	if status.Convert(err).Message() != "missing token" {
		t.Fatalf("expected 'missing token', got %q", status.Convert(err).Message())
	}
}

func TestInterceptor_InvalidToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodGetListing)}

	expired, err := auth.IssueAccessToken("u1", []byte("secret"), -time.Minute)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	foreign, err := auth.IssueAccessToken("u1", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	for name, token := range map[string]string{"garbage": "not-a-valid-jwt", "expired": expired, "foreign": foreign} {
		h := func(ctx context.Context, req any) (any, error) {
			t.Fatalf("%s: handler should not be called for invalid token", name)
			return nil, nil
		}

		_, err := s.accessTokenInterceptor(incoming(token), nil, info, h)
		if status.Code(err) != codes.Unauthenticated {
			t.Fatalf("%s: expected Unauthenticated, got %v", name, status.Code(err))
		}
	}
}

func TestInterceptor_ValidToken_SetsUserID(t *testing.T) {
	secret := "super-secret"
	s := newTestServer(secret)

	userID := "user-123"
	token, err := auth.IssueAccessToken(userID, []byte(secret), time.Hour)
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	info := &grpc.UnaryServerInfo{FullMethod: api.FullMethod(api.MethodBuyerHistory)}

	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got, err = userIDFrom(ctx)
		return "ok", err
	}

	resp, err := s.accessTokenInterceptor(incoming(token), nil, info, h)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Fatalf("unexpected handler resp: %v", resp)
	}
	if got != userID {
		t.Fatalf("user id not propagated in context: got %v want %v", got, userID)
	}
}

func TestUserIDFrom_Missing(t *testing.T) {
	if _, err := userIDFrom(context.Background()); status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestMethodName(t *testing.T) {
	if got := methodName(api.FullMethod(api.MethodPing)); got != "Ping" {
		t.Fatalf("methodName = %q", got)
	}
	if got := methodName("Bare"); got != "Bare" {
		t.Fatalf("methodName = %q", got)
	}
}
