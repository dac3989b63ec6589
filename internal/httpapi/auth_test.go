package httpapi

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"task-manager/internal/service"
)

type fakeVerifier struct {
	subject string
	err     error
	got     string
}

func (f *fakeVerifier) Verify(token string) (string, error) {
	f.got = token
	return f.subject, f.err
}

func gateRecorder(t *testing.T, v TokenVerifier, header string) (*httptest.ResponseRecorder, *uuid.UUID) {
	t.Helper()
	var bound *uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Fatalf("handler reached without a bound user id")
		}
		bound = &id
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	RequireAuth(v, log.New(io.Discard, "", 0))(next).ServeHTTP(w, req)
	return w, bound
}

func TestRequireAuth_BindsUserID(t *testing.T) {
	id := uuid.New()
	v := &fakeVerifier{subject: id.String()}

	w, bound := gateRecorder(t, v, "Bearer abc.def.ghi")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if bound == nil || *bound != id {
		t.Fatalf("bound=%v want=%s", bound, id)
	}
	if v.got != "abc.def.ghi" {
		t.Fatalf("verifier got %q", v.got)
	}

	w, _ = gateRecorder(t, v, "abc.def.ghi")
	if w.Code != http.StatusNoContent || v.got != "abc.def.ghi" {
		t.Fatalf("raw token: status=%d got=%q", w.Code, v.got)
	}
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	v := &fakeVerifier{subject: uuid.NewString()}

	w, bound := gateRecorder(t, v, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d", w.Code)
	}
	if bound != nil || v.got != "" {
		t.Fatalf("request passed the gate")
	}
}

func TestRequireAuth_HidesFailureReason(t *testing.T) {
	expired, _ := gateRecorder(t, &fakeVerifier{err: service.ErrTokenExpired}, "tok")
	invalid, _ := gateRecorder(t, &fakeVerifier{err: service.ErrTokenInvalid}, "tok")
	badSubject, _ := gateRecorder(t, &fakeVerifier{subject: "not-a-uuid"}, "tok")

	for name, w := range map[string]*httptest.ResponseRecorder{"expired": expired, "invalid": invalid, "bad subject": badSubject} {
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status=%d", name, w.Code)
		}
	}
	if expired.Body.String() != invalid.Body.String() || invalid.Body.String() != badSubject.Body.String() {
		t.Fatalf("bodies differ: %q / %q / %q", expired.Body.String(), invalid.Body.String(), badSubject.Body.String())
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"abc":             "abc",
		"Bearer abc":      "abc",
		"bearer abc":      "abc",
		"  Bearer  abc  ": "abc",
		"Bearer ":         "",
	}
	for in, want := range cases {
		if got := bearerToken(in); got != want {
			t.Fatalf("bearerToken(%q)=%q want %q", in, got, want)
		}
	}
}
