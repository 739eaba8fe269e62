package loaders

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/go-cmp/cmp"
)

func TestStatic(t *testing.T) {
	load := Static(map[string]any{"a": 1})
	got, err := load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"a": 1}, got); diff != "" {
		t.Errorf("Static mismatch (-want +got):\n%s", diff)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled Static error = %v", err)
	}
}

func TestHTTPJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user":
			if r.Header.Get("X-Token") != "secret" {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"name":"ada","tags":["x"]}`)
		case "/broken":
			io.WriteString(w, `{"name":`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	opts := HTTPOptions{Header: http.Header{"X-Token": {"secret"}}}

	got, err := HTTPJSON(srv.URL+"/user", opts)(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"name": "ada", "tags": []any{"x"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("HTTPJSON mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name string
		path string
		opts HTTPOptions
		want string
	}{
		{"not found", "/missing", opts, "404"},
		{"forbidden", "/user", HTTPOptions{}, "403"},
		{"bad json", "/broken", opts, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HTTPJSON(srv.URL+tt.path, tt.opts)(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

type fakeS3 struct {
	objects map[string]string
	calls   []string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.calls = append(f.calls, key)
	body, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3JSON(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"site/pages/home.json": `{"title":"Home"}`}}

	got, err := S3JSON(fake, "site", "pages/home.json")(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]any{"title": "Home"}, got); diff != "" {
		t.Errorf("S3JSON mismatch (-want +got):\n%s", diff)
	}

	_, err = S3JSON(fake, "site", "missing.json")(context.Background())
	if err == nil || !strings.Contains(err.Error(), "site/missing.json") {
		t.Errorf("missing object error = %v", err)
	}
	if diff := cmp.Diff([]string{"site/pages/home.json", "site/missing.json"}, fake.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestNewS3Client(t *testing.T) {
	if NewS3Client(S3Options{Region: "us-east-1", Endpoint: "http://localhost:9000", PathStyle: true}) == nil {
		t.Fatal("NewS3Client returned nil")
	}
}
