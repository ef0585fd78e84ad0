package export

import (
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	json "github.com/goccy/go-json"

	"github.com/vango-dev/scene/internal/demo"
	"github.com/vango-dev/scene/internal/errors"
	"github.com/vango-dev/scene/pkg/inspect"
	"github.com/vango-dev/scene/pkg/runtime"
)

func frame(t *testing.T) *runtime.Frame {
	t.Helper()
	rt := runtime.New(runtime.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	f, err := rt.Frame(context.Background(), demo.NewCounter("Export").Render)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestKey(t *testing.T) {
	tests := []struct {
		prefix string
		seq    uint64
		want   string
	}{
		{"", 1, "frame-1.json"},
		{"frames", 12, "frames/frame-12.json"},
		{"runs/a/", 3, "runs/a/frame-3.json"},
	}
	for _, tt := range tests {
		if got := New(nil, WithPrefix(tt.prefix)).Key(tt.seq); got != tt.want {
			t.Errorf("Key(%q, %d) = %q, want %q", tt.prefix, tt.seq, got, tt.want)
		}
	}
}

func TestExportToDir(t *testing.T) {
	dir := t.TempDir()
	ex := New(NewDirStore(dir), WithPrefix("frames"), WithIndent(), quiet())

	key, err := ex.Export(context.Background(), frame(t))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if key != "frames/frame-1.json" {
		t.Errorf("key = %q", key)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames", "frame-1.json"))
	if err != nil {
		t.Fatal(err)
	}
	var snap inspect.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Seq != 1 || snap.Tree == nil || snap.Tree.Kind != "app" {
		t.Errorf("report = %+v", snap)
	}
	if !strings.Contains(string(data), "\n  ") {
		t.Error("WithIndent should pretty-print")
	}
	if _, err := os.Stat(filepath.Join(dir, "frames", "frame-1.json.tmp")); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestExportNilFrame(t *testing.T) {
	_, err := New(NewDirStore(t.TempDir()), quiet()).Export(context.Background(), nil)
	if errors.Code(err) != "E140" {
		t.Errorf("code = %q, want E140", errors.Code(err))
	}
}

type failingStore struct{}

func (failingStore) Put(context.Context, string, []byte) error {
	return stderrors.New("disk full")
}

func TestExportStoreError(t *testing.T) {
	_, err := New(failingStore{}, quiet()).Export(context.Background(), frame(t))
	if errors.Code(err) != "E140" {
		t.Fatalf("code = %q, want E140", errors.Code(err))
	}
	if !strings.Contains(err.Error(), "frame-1.json") {
		t.Errorf("error should name the key: %v", err)
	}
}

func TestDirStoreRejectsEscapingKeys(t *testing.T) {
	store := NewDirStore(t.TempDir())
	for _, key := range []string{"", ".", "..", "../x.json", "/etc/passwd"} {
		if err := store.Put(context.Background(), key, []byte("{}")); err == nil {
			t.Errorf("Put(%q) should fail", key)
		}
	}
}

func TestDirStoreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewDirStore(t.TempDir()).Put(ctx, "a.json", nil); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Put() error = %v, want context.Canceled", err)
	}
}

type fakeS3 struct {
	mu   sync.Mutex
	puts []*s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, in)
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	client := &fakeS3{}
	ex := New(NewS3Store(client, "bucket"), WithPrefix("frames"), quiet())

	if _, err := ex.Export(context.Background(), frame(t)); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(client.puts) != 1 {
		t.Fatalf("puts = %d, want 1", len(client.puts))
	}
	in := client.puts[0]
	if *in.Bucket != "bucket" || *in.Key != "frames/frame-1.json" || *in.ContentType != "application/json" {
		t.Errorf("PutObject input = bucket %q key %q type %q", *in.Bucket, *in.Key, *in.ContentType)
	}
	if !strings.Contains(string(client.body), `"seq":1`) {
		t.Errorf("uploaded body = %s", client.body)
	}

	client.err = stderrors.New("access denied")
	if err := NewS3Store(client, "bucket").Put(context.Background(), "k", nil); err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("Put() error = %v", err)
	}
}

func TestNewS3Client(t *testing.T) {
	// Isolate from the host's shared config and credentials files.
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AWS_CONFIG_FILE", empty)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", empty)
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_REGION", "us-east-2")
	ctx := context.Background()

	client, err := NewS3Client(ctx, "")
	if err != nil {
		t.Fatalf("NewS3Client() error = %v", err)
	}
	if got := client.Options().Region; got != "us-east-2" {
		t.Errorf("region = %q, want us-east-2", got)
	}

	client, err = NewS3Client(ctx, "eu-west-1")
	if err != nil {
		t.Fatalf("NewS3Client() error = %v", err)
	}
	if got := client.Options().Region; got != "eu-west-1" {
		t.Errorf("region = %q, want eu-west-1", got)
	}
}

func TestNewS3ClientSharedProfile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config")
	credFile := filepath.Join(dir, "credentials")
	if err := os.WriteFile(cfgFile, []byte("[profile scene]\nregion = ap-south-1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	creds := "[scene]\naws_access_key_id = AKIDSCENE\naws_secret_access_key = secret\n"
	if err := os.WriteFile(credFile, []byte(creds), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("AWS_CONFIG_FILE", cfgFile)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", credFile)
	t.Setenv("AWS_PROFILE", "scene")
	t.Setenv("AWS_REGION", "")
	t.Setenv("AWS_DEFAULT_REGION", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	client, err := NewS3Client(context.Background(), "")
	if err != nil {
		t.Fatalf("NewS3Client() error = %v", err)
	}
	opts := client.Options()
	if opts.Region != "ap-south-1" {
		t.Errorf("region = %q, want ap-south-1", opts.Region)
	}
	got, err := opts.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if got.AccessKeyID != "AKIDSCENE" {
		t.Errorf("access key = %q, want AKIDSCENE", got.AccessKeyID)
	}
}
