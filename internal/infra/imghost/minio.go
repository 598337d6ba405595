package imghost

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	domain "github.com/imageinsight/appraiser/internal/domain/analysis"
)

// MinioHost is the self-hosted alternative to ImgBB: uploaded images land
// in a MinIO bucket and are served from its public URL.
type MinioHost struct {
	client     *minio.Client
	bucketName string
	useSSL     bool
}

// NewMinio buat koneksi MinIO
func NewMinio(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*MinioHost, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	// pastikan bucket ada
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &MinioHost{client: cli, bucketName: bucket, useSSL: useSSL}, nil
}

// Upload decodes the base64 payload and stores it as a jpeg object. The key
// argument is unused here; MinIO credentials come from the server config,
// but the signature matches the ImageHost port so backends stay swappable.
func (s *MinioHost) Upload(ctx context.Context, imageData, key string) (domain.HostedImage, error) {
	payload := imageData
	if i := strings.Index(payload, "base64,"); i >= 0 {
		payload = payload[i+len("base64,"):]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return domain.HostedImage{}, fmt.Errorf("decode image payload: %w", err)
	}

	object := fmt.Sprintf("uploads/%s.jpg", uuid.New().String())
	_, err = s.client.PutObject(ctx, s.bucketName, object,
		bytes.NewReader(raw), int64(len(raw)),
		minio.PutObjectOptions{ContentType: "image/jpeg"})
	if err != nil {
		return domain.HostedImage{}, err
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucketName, object)
	return domain.HostedImage{URL: url}, nil
}
