package authclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
)

func TestClientLogout(t *testing.T) {
	type testCase struct {
		Status      int
		ExpectError bool
	}

	testCases := []testCase{
		{Status: http.StatusOK},
		{Status: http.StatusNoContent},
		{Status: http.StatusAccepted},
		{Status: http.StatusUnauthorized, ExpectError: true},
		{Status: http.StatusInternalServerError, ExpectError: true},
		{Status: http.StatusFound, ExpectError: true},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d (%d)", idx, tc.Status), func(t *testing.T) {
			calls := 0

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++

				if e, g := http.MethodDelete, r.Method; e != g {
					t.Errorf("r.Method: expected '%v', got '%v'", e, g)
				}

				if e, g := "/console/login", r.URL.Path; e != g {
					t.Errorf("r.URL.Path: expected '%v', got '%v'", e, g)
				}

				if r.ContentLength > 0 {
					t.Errorf("r.ContentLength: expected no body, got '%d'", r.ContentLength)
				}

				if tc.Status == http.StatusFound {
					w.Header().Set("Location", "/elsewhere")
				}

				w.WriteHeader(tc.Status)
			}))
			defer server.Close()

			client, err := New(server.URL+"/console", WithHTTPClient(&http.Client{
				CheckRedirect: func(req *http.Request, via []*http.Request) error {
					return http.ErrUseLastResponse
				},
			}))
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			err = client.Logout(context.Background())

			if tc.ExpectError {
				if !errors.Is(err, ErrLogoutFailed) {
					t.Errorf("err: expected '%v', got '%v'", ErrLogoutFailed, err)
				}
			} else if err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}

			if e, g := 1, calls; e != g {
				t.Errorf("calls: expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestClientLogoutUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := New(server.URL)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := client.Logout(context.Background()); !errors.Is(err, ErrLogoutFailed) {
		t.Errorf("err: expected '%v', got '%v'", ErrLogoutFailed, err)
	}
}

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (fn roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return fn(req)
}

type failingBody struct{}

func (failingBody) Read(p []byte) (int, error) {
	return 0, errors.New("connection reset")
}

func (failingBody) Close() error {
	return nil
}

func TestClientLogoutBrokenBody(t *testing.T) {
	type testCase struct {
		Status      int
		ExpectError bool
	}

	testCases := []testCase{
		{Status: http.StatusNoContent},
		{Status: http.StatusOK},
		{Status: http.StatusUnauthorized, ExpectError: true},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d (%d)", idx, tc.Status), func(t *testing.T) {
			httpClient := &http.Client{
				Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: tc.Status,
						Status:     fmt.Sprintf("%d %s", tc.Status, http.StatusText(tc.Status)),
						Body:       failingBody{},
						Request:    req,
					}, nil
				}),
			}

			client, err := New("http://compass.local", WithHTTPClient(httpClient))
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			err = client.Logout(context.Background())

			if tc.ExpectError {
				if !errors.Is(err, ErrLogoutFailed) {
					t.Errorf("err: expected '%v', got '%v'", ErrLogoutFailed, err)
				}
			} else if err != nil {
				t.Errorf("%+v", errors.WithStack(err))
			}
		})
	}
}
