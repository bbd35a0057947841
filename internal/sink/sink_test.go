package sink

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"

	"ngramsubset/internal/config"
)

func TestStdoutSinkWritesWhenRedirected(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdoutSink(&buf)
	if err := s.Emit(context.Background(), []byte("module"), "a.js", "text/javascript"); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if buf.String() != "module" {
		t.Fatalf("unexpected output: got %q want %q", buf.String(), "module")
	}
}

func TestStdoutSinkRefusesTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewStdoutSink(&buf)
	s.isTerminal = func() bool { return true }

	err := s.Emit(context.Background(), []byte("module"), "a.js", "text/javascript")
	if !errors.Is(err, ErrNoDeliveryEnvironment) {
		t.Fatalf("expected ErrNoDeliveryEnvironment, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}
}

func TestNopSinkReportsNoEnvironment(t *testing.T) {
	var s Sink = NopSink{}
	if err := s.Emit(context.Background(), []byte("x"), "a.js", ""); !errors.Is(err, ErrNoDeliveryEnvironment) {
		t.Fatalf("expected ErrNoDeliveryEnvironment, got %v", err)
	}
	if Location(s, "a.js") != "a.js" {
		t.Fatalf("expected filename as location fallback")
	}
}

func TestMemorySinkCapturesCopies(t *testing.T) {
	s := NewMemorySink()
	data := []byte("abc")
	if err := s.Emit(context.Background(), data, "a.js", "text/javascript"); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	data[0] = 'z'

	got := s.Emissions()
	if len(got) != 1 {
		t.Fatalf("expected 1 emission, got %d", len(got))
	}
	if string(got[0].Data) != "abc" || got[0].Filename != "a.js" || got[0].MIMEType != "text/javascript" {
		t.Fatalf("unexpected emission: %+v", got[0])
	}

	boom := errors.New("boom")
	s.FailWith(boom)
	if err := s.Emit(context.Background(), data, "b.js", ""); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("failed emit should not be captured")
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3SinkPutsObject(t *testing.T) {
	client := &fakeS3{}
	s := NewS3Sink(client, "eld-data", "subsets")

	if err := s.Emit(context.Background(), []byte("module"), "ngramsM60-2_1.js", "text/javascript"); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if got := aws.ToString(client.input.Bucket); got != "eld-data" {
		t.Fatalf("unexpected bucket: got %q", got)
	}
	if got := aws.ToString(client.input.Key); got != "subsets/ngramsM60-2_1.js" {
		t.Fatalf("unexpected key: got %q", got)
	}
	if got := aws.ToString(client.input.ContentType); got != "text/javascript" {
		t.Fatalf("unexpected content type: got %q", got)
	}
	if aws.ToInt64(client.input.ContentLength) != 6 || string(client.body) != "module" {
		t.Fatalf("unexpected body: %q", client.body)
	}
	if loc := s.Location("ngramsM60-2_1.js"); loc != "s3://eld-data/subsets/ngramsM60-2_1.js" {
		t.Fatalf("unexpected location: got %q", loc)
	}
}

func TestS3SinkWrapsErrors(t *testing.T) {
	boom := errors.New("access denied")
	s := NewS3Sink(&fakeS3{err: boom}, "eld-data", "")
	err := s.Emit(context.Background(), []byte("x"), "a.js", "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !strings.Contains(err.Error(), "s3://eld-data/a.js") {
		t.Fatalf("expected location in error, got %q", err.Error())
	}
}

type fakeMinio struct {
	bucket, object string
	size           int64
	opts           minio.PutObjectOptions
	body           []byte
}

func (f *fakeMinio) PutObject(_ context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.bucket, f.object, f.size, f.opts = bucketName, objectName, objectSize, opts
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.body = body
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func TestMinioSinkPutsObject(t *testing.T) {
	client := &fakeMinio{}
	s := NewMinioSink(client, "eld", "ngrams")

	if err := s.Emit(context.Background(), []byte("module"), "ngramsM60-1_5.js", "text/javascript"); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if client.bucket != "eld" || client.object != "ngrams/ngramsM60-1_5.js" {
		t.Fatalf("unexpected destination: %s/%s", client.bucket, client.object)
	}
	if client.size != 6 || string(client.body) != "module" {
		t.Fatalf("unexpected upload: size=%d body=%q", client.size, client.body)
	}
	if client.opts.ContentType != "text/javascript" {
		t.Fatalf("unexpected content type: %q", client.opts.ContentType)
	}
	if loc := s.Location("ngramsM60-1_5.js"); loc != "eld/ngrams/ngramsM60-1_5.js" {
		t.Fatalf("unexpected location: %q", loc)
	}
}

func TestNewSelectsSinkByKind(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{kind: config.SinkFile, want: "file"},
		{kind: config.SinkStdout, want: "stdout"},
		{kind: config.SinkNone, want: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cfg := config.Default()
			cfg.Sink.Kind = tt.kind
			cfg.Paths.OutputDir = t.TempDir()
			s, err := New(context.Background(), &cfg, &bytes.Buffer{})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if s.Name() != tt.want {
				t.Fatalf("unexpected sink: got %q want %q", s.Name(), tt.want)
			}
		})
	}

	cfg := config.Default()
	cfg.Sink.Kind = "ftp"
	if _, err := New(context.Background(), &cfg, nil); err == nil {
		t.Fatal("expected error for unsupported kind")
	}
}

func TestNewMinioSinkFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Sink.Kind = config.SinkMinio
	cfg.Minio.Endpoint = "localhost:9000"
	cfg.Minio.Bucket = "eld"
	cfg.Minio.AccessKey = "access"
	cfg.Minio.SecretKey = "secret"
	cfg.Minio.Secure = false

	s, err := New(context.Background(), &cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.Name() != "minio" {
		t.Fatalf("unexpected sink: %q", s.Name())
	}
	if loc := Location(s, "a.js"); loc != "eld/ngrams/a.js" {
		t.Fatalf("unexpected location: %q", loc)
	}
}
