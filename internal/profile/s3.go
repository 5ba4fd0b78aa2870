package profile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jonathan/career-mentor/internal/types"
)

// ObjectAPI is the subset of the S3 client used by S3Store.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps one JSON object per user at <prefix>/<id>.json.
type S3Store struct {
	client ObjectAPI
	bucket string
	prefix string
}

// S3Options configures NewS3Store.
type S3Options struct {
	Region   string
	Bucket   string
	Prefix   string
	Endpoint string // optional, for S3-compatible services
}

// NewS3Store creates an S3-backed store using the default AWS credential chain.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if strings.TrimSpace(opts.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewS3StoreWithClient(client, opts.Bucket, opts.Prefix), nil
}

// NewS3StoreWithClient creates an S3Store over an existing client.
func NewS3StoreWithClient(client ObjectAPI, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
	}
}

// Key returns the object key for a normalized id.
func (s *S3Store) Key(id string) string {
	if s.prefix == "" {
		return id + ".json"
	}
	return s.prefix + "/" + id + ".json"
}

// Load fetches the profile object, returning the default profile on NoSuchKey.
func (s *S3Store) Load(ctx context.Context, userID string) (types.UserProfile, error) {
	id, err := NormalizeID(userID)
	if err != nil {
		return types.UserProfile{}, err
	}

	key := s.Key(id)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return types.NewUserProfile(id), nil
		}
		return types.UserProfile{}, fmt.Errorf("s3 get object bucket=%s key=%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return types.UserProfile{}, fmt.Errorf("failed to read s3 object %s: %w", key, err)
	}
	return decode(id, "s3://"+s.bucket+"/"+key, data)
}

// Save writes the full profile object. PutObject replaces the object atomically.
func (s *S3Store) Save(ctx context.Context, userID string, p types.UserProfile) error {
	id, err := NormalizeID(userID)
	if err != nil {
		return err
	}
	p, err = prepare(id, p)
	if err != nil {
		return err
	}
	data, err := encode(p)
	if err != nil {
		return err
	}

	key := s.Key(id)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(s.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(data),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucket, key, err)
	}
	return nil
}
