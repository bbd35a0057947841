package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/c2h5oh/datasize"
	"golang.org/x/sys/unix"
)

const (
	s3CheckName    = "S3 bucket"
	minioCheckName = "MinIO bucket"
	remoteTimeout  = 10 * time.Second
)

// HeadBucketAPI is the subset of *s3.Client used to probe a bucket.
type HeadBucketAPI interface {
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// BucketExistsAPI is the subset of *minio.Client used to probe a bucket.
type BucketExistsAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// statfs is swapped in tests.
var statfs = func(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// CheckSource verifies the full n-gram table exists and is readable. Sizes
// above maxSize fail; compressed sources are measured on disk only.
func CheckSource(path string, maxSize datasize.ByteSize) Result {
	const name = "Source table"

	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "source.path not set (build needs --source)"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a regular file)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	size := datasize.ByteSize(info.Size())
	if maxSize > 0 && size > maxSize {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s exceeds source.max_size %s)", path, size.HumanReadable(), maxSize.HumanReadable())}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, size.HumanReadable())}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies the filesystem holding path keeps at least min
// bytes available. A zero min only reports the figure.
func CheckFreeSpace(name, path string, min datasize.ByteSize) Result {
	avail, err := statfs(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := datasize.ByteSize(avail)
	if min > 0 && free < min {
		return Result{Name: name, Detail: fmt.Sprintf("%s free, below sink.min_free_space %s", free.HumanReadable(), min.HumanReadable())}
	}
	return Result{Name: name, Passed: true, Detail: free.HumanReadable() + " free"}
}

// CheckS3Bucket verifies the bucket exists and the credentials can see it.
func CheckS3Bucket(ctx context.Context, client HeadBucketAPI, bucket string) Result {
	if strings.TrimSpace(bucket) == "" {
		return Result{Name: s3CheckName, Detail: "s3.bucket not set"}
	}
	checkCtx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	if _, err := client.HeadBucket(checkCtx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return Result{Name: s3CheckName, Detail: fmt.Sprintf("%s (error: %s)", bucket, summarizeRemoteError(err))}
	}
	return Result{Name: s3CheckName, Passed: true, Detail: bucket + " (reachable)"}
}

// CheckMinioBucket verifies the bucket exists on the MinIO endpoint.
func CheckMinioBucket(ctx context.Context, client BucketExistsAPI, bucket string) Result {
	if strings.TrimSpace(bucket) == "" {
		return Result{Name: minioCheckName, Detail: "minio.bucket not set"}
	}
	checkCtx, cancel := context.WithTimeout(ctx, remoteTimeout)
	defer cancel()

	exists, err := client.BucketExists(checkCtx, bucket)
	if err != nil {
		return Result{Name: minioCheckName, Detail: fmt.Sprintf("%s (error: %s)", bucket, summarizeRemoteError(err))}
	}
	if !exists {
		return Result{Name: minioCheckName, Detail: fmt.Sprintf("%s (error: bucket does not exist)", bucket)}
	}
	return Result{Name: minioCheckName, Passed: true, Detail: bucket + " (reachable)"}
}

func summarizeRemoteError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timed out"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timed out"
	}
	return err.Error()
}
