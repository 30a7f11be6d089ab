// Package iosources implements sources.Loader for local files, http(s)
// URLs and S3 objects. Remote data is downloaded into the sources cache
// before parsing.
package iosources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/consetl/pkg/config"
	"github.com/gnames/consetl/pkg/sources"
	"github.com/gnames/consetl/pkg/table"
	"github.com/gnames/gn"
	"github.com/gnames/gnsys"
)

// defaultRegion is used for S3 when AWS configuration does not set one.
const defaultRegion = "us-east-1"

// objectGetter is the part of s3.Client used by the loader.
type objectGetter interface {
	GetObject(
		ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)
}

type iosources struct {
	cacheDir string
	client   *http.Client
	s3       objectGetter
}

// New creates a loader and prepares an empty sources cache directory.
func New(cfg *config.Config) (sources.Loader, error) {
	cacheDir := config.SourcesCacheDir(cfg.HomeDir)
	if err := gnsys.MakeDir(cacheDir); err != nil {
		return nil, SourceCacheError(cacheDir, err)
	}
	if err := gnsys.CleanDir(cacheDir); err != nil {
		return nil, SourceCacheError(cacheDir, err)
	}

	res := iosources{
		cacheDir: cacheDir,
		client:   &http.Client{},
	}
	return &res, nil
}

// Load retrieves the dataset at location and parses it as CSV.
func (s *iosources) Load(
	ctx context.Context,
	name, location string,
) (*table.Table, error) {
	loc, err := sources.ParseLocation(location)
	if errors.Is(err, sources.ErrUnknownScheme) {
		return nil, UnknownSchemeError(name, location, err)
	}
	if err != nil {
		return nil, SourceUnavailableError(name, location, err)
	}

	path := loc.Raw
	switch loc.Kind {
	case sources.HTTP:
		path, err = s.download(ctx, name, loc, s.fetchHTTP)
	case sources.S3:
		path, err = s.download(ctx, name, loc, s.fetchS3)
	default:
		_, err = os.Stat(path)
	}
	if err != nil {
		var gnErr *gn.Error
		if errors.As(err, &gnErr) {
			return nil, err
		}
		return nil, SourceUnavailableError(name, location, err)
	}

	tbl, err := readCSVFile(name, path)
	if err != nil {
		return nil, SourceReadError(name, path, err)
	}

	slog.Info("Loaded source",
		"name", name,
		"kind", loc.Kind.String(),
		"rows", tbl.Len(),
	)
	return tbl, nil
}

type fetchFunc func(ctx context.Context, loc sources.Location) (io.ReadCloser, error)

// download saves a remote object into the cache and returns the path of
// the cached file.
func (s *iosources) download(
	ctx context.Context,
	name string,
	loc sources.Location,
	fetch fetchFunc,
) (string, error) {
	slog.Info("Downloading source", "name", name, "location", loc.Raw)

	body, err := fetch(ctx, loc)
	if err != nil {
		return "", err
	}
	defer body.Close()

	path := filepath.Join(s.cacheDir, name+"_"+loc.FileName())
	f, err := os.Create(path)
	if err != nil {
		return "", SourceCacheError(s.cacheDir, err)
	}

	n, err := io.Copy(f, body)
	if err != nil {
		f.Close()
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", SourceCacheError(s.cacheDir, err)
	}

	slog.Info("Downloaded source",
		"name", name,
		"path", path,
		"size", humanize.Bytes(uint64(n)),
	)
	return path, nil
}

func (s *iosources) fetchHTTP(
	ctx context.Context,
	loc sources.Location,
) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc.Raw, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *iosources) fetchS3(
	ctx context.Context,
	loc sources.Location,
) (io.ReadCloser, error) {
	if s.s3 == nil {
		client, err := newS3Client(ctx)
		if err != nil {
			return nil, err
		}
		s.s3 = client
	}

	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("S3 GetObject %s/%s: %w", loc.Bucket, loc.Key, err)
	}
	return resp.Body, nil
}

// newS3Client uses the default AWS configuration chain. Without any
// credentials requests are sent unsigned, which is enough for public
// buckets.
func newS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.Credentials == nil {
		cfg.Credentials = aws.AnonymousCredentials{}
	} else if _, err = cfg.Credentials.Retrieve(ctx); err != nil {
		slog.Info("No AWS credentials found, using anonymous access")
		cfg.Credentials = aws.AnonymousCredentials{}
	}
	return s3.NewFromConfig(cfg), nil
}
