package filestore

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	commons3 "github.com/xxxsen/common/s3"
)

type s3Config struct {
	Endpoint  string `json:"endpoint"`
	SecretID  string `json:"secret_id"`
	SecretKey string `json:"secret_key"`
	Bucket    string `json:"bucket"`
	Region    string `json:"region"`
	Prefix    string `json:"prefix"`
	PublicURL string `json:"public_url"`
	UseSSL    bool   `json:"use_ssl"`
}

type s3Store struct {
	client  *commons3.S3Client
	cfg     *s3Config
	baseURL string
}

func init() {
	Register("s3", createS3Store)
}

func createS3Store(args interface{}) (Store, error) {
	cfg := &s3Config{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	for name, value := range map[string]string{
		"endpoint":   cfg.Endpoint,
		"bucket":     cfg.Bucket,
		"secret_id":  cfg.SecretID,
		"secret_key": cfg.SecretKey,
	} {
		if value == "" {
			return nil, fmt.Errorf("s3 %s is required", name)
		}
	}
	if cfg.Region == "" {
		cfg.Region = "cn"
	}
	cfg.Prefix = strings.Trim(cfg.Prefix, "/")
	client, err := commons3.New(
		commons3.WithEndpoint(cfg.Endpoint),
		commons3.WithSecret(cfg.SecretID, cfg.SecretKey),
		commons3.WithBucket(cfg.Bucket),
		commons3.WithRegion(cfg.Region),
		commons3.WithSSL(cfg.UseSSL),
	)
	if err != nil {
		return nil, err
	}
	return &s3Store{client: client, cfg: cfg, baseURL: objectBaseURL(cfg)}, nil
}

func (s *s3Store) Type() string {
	return "s3"
}

func (s *s3Store) URL(key, baseURL string) string {
	_ = baseURL
	return s.baseURL + "/" + strings.TrimPrefix(s.objectKey(key), "/")
}

func (s *s3Store) Save(ctx context.Context, key string, r ReadSeekCloser, size int64) error {
	if key == "" {
		return fmt.Errorf("file key is required")
	}
	_, err := s.client.Upload(ctx, s.objectKey(key), r, size)
	return err
}

// Open is not supported; callers fetch objects over HTTP through URL.
func (s *s3Store) Open(ctx context.Context, key string) (ReadSeekCloser, error) {
	_ = ctx
	_ = key
	return nil, fmt.Errorf("s3 store does not support open")
}

func (s *s3Store) objectKey(key string) string {
	if s.cfg.Prefix == "" {
		return key
	}
	return path.Join(s.cfg.Prefix, key)
}

func objectBaseURL(cfg *s3Config) string {
	if cfg.PublicURL != "" {
		return strings.TrimSuffix(cfg.PublicURL, "/")
	}
	ep := cfg.Endpoint
	if !strings.Contains(ep, "://") {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		ep = scheme + "://" + ep
	}
	u, err := url.Parse(ep)
	if err != nil {
		return strings.TrimSuffix(ep, "/") + "/" + cfg.Bucket
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + cfg.Bucket
	return strings.TrimSuffix(u.String(), "/")
}
