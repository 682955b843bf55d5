package main

import (
	"bytes"
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	log "github.com/sirupsen/logrus"
)

// Location schemes
const (
	SchemeFile = "file"
	SchemeGCS  = "gs"
	SchemeS3   = "s3"
)

// Location is a file on disk or an object in a bucket
type Location struct {
	Raw    string
	Scheme string
	Bucket string
	Key    string
}

// ParseLocation splits gs://bucket/key and s3://bucket/key locations. Any
// other string is a local path.
func ParseLocation(raw string) Location {
	for _, scheme := range []string{SchemeGCS, SchemeS3} {
		prefix := scheme + "://"
		if !strings.HasPrefix(raw, prefix) {
			continue
		}
		rest := strings.TrimPrefix(raw, prefix)
		bucket, key := rest, ""
		if i := strings.Index(rest, "/"); i >= 0 {
			bucket, key = rest[:i], rest[i+1:]
		}
		return Location{Raw: raw, Scheme: scheme, Bucket: bucket, Key: key}
	}
	return Location{Raw: raw, Scheme: SchemeFile, Key: raw}
}

// Remote reports whether the location lives in a bucket
func (l Location) Remote() bool {
	return l.Scheme != SchemeFile
}

// Ext returns the lower-cased extension of the file or object name
func (l Location) Ext() string {
	return strings.ToLower(filepath.Ext(l.Key))
}

// Display is the form of the location shown to the user
func (l Location) Display() string {
	if l.Remote() {
		return l.Raw
	}
	if abs, err := filepath.Abs(l.Key); err == nil {
		return abs
	}
	return l.Key
}

// ObjectStore reads and writes whole objects
type ObjectStore interface {
	Read(ctx context.Context, loc Location) ([]byte, error)
	Write(ctx context.Context, loc Location, data []byte, contentType string) error
}

// Stores picks the backend for a location. Remote clients are created
// lazily so local runs never touch cloud credentials.
type Stores struct {
	Local ObjectStore
	GCS   ObjectStore
	S3    ObjectStore
}

// DefaultStores returns the local, GCS and S3 backends
func DefaultStores() *Stores {
	return &Stores{
		Local: localStore{},
		GCS:   gcsStore{},
		S3:    s3Store{cfg: s3ConfigFromEnv()},
	}
}

func (s *Stores) For(loc Location) (ObjectStore, error) {
	var st ObjectStore
	switch loc.Scheme {
	case SchemeFile:
		st = s.Local
	case SchemeGCS:
		st = s.GCS
	case SchemeS3:
		st = s.S3
	}
	if st == nil {
		return nil, fmt.Errorf("no store configured for %q", loc.Raw)
	}
	if loc.Remote() && (loc.Bucket == "" || loc.Key == "") {
		return nil, fmt.Errorf("location %q needs both a bucket and an object name", loc.Raw)
	}
	return st, nil
}

// Read loads a whole object from the backend of its location
func (s *Stores) Read(ctx context.Context, loc Location) ([]byte, error) {
	st, err := s.For(loc)
	if err != nil {
		return nil, err
	}
	return st.Read(ctx, loc)
}

// Write stores a whole object through the backend of its location
func (s *Stores) Write(ctx context.Context, loc Location, data []byte, contentType string) error {
	st, err := s.For(loc)
	if err != nil {
		return err
	}
	return st.Write(ctx, loc, data, contentType)
}

type localStore struct{}

func (localStore) Read(_ context.Context, loc Location) ([]byte, error) {
	return ioutil.ReadFile(loc.Key)
}

func (localStore) Write(_ context.Context, loc Location, data []byte, _ string) error {
	if dir := filepath.Dir(loc.Key); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return err
		}
	}
	return ioutil.WriteFile(loc.Key, data, 0644)
}

type gcsStore struct{}

func (gcsStore) Read(ctx context.Context, loc Location) ([]byte, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		log.Error("failed to create client: ", err)
		return nil, err
	}
	defer client.Close()

	rc, err := client.Bucket(loc.Bucket).Object(loc.Key).NewReader(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ioutil.ReadAll(rc)
}

func (gcsStore) Write(ctx context.Context, loc Location, data []byte, contentType string) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		log.Error("failed to create client: ", err)
		return err
	}
	defer client.Close()

	wc := client.Bucket(loc.Bucket).Object(loc.Key).NewWriter(ctx)
	wc.ContentType = contentType

	if _, err := wc.Write(data); err != nil {
		return err
	}

	return wc.Close()
}

type s3Config struct {
	Region    string
	Endpoint  string
	PathStyle bool
}

func s3ConfigFromEnv() s3Config {
	return s3Config{
		Region:    os.Getenv(EnvS3Region),
		Endpoint:  os.Getenv(EnvS3Endpoint),
		PathStyle: strings.EqualFold(os.Getenv(EnvS3PathStyle), "true"),
	}
}

type s3Store struct {
	cfg s3Config
}

func (s s3Store) client(ctx context.Context) (*s3.Client, error) {
	region := s.cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s.cfg.PathStyle {
			o.UsePathStyle = true
		}
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
		}
	}), nil
}

func (s s3Store) Read(ctx context.Context, loc Location) ([]byte, error) {
	client, err := s.client(ctx)
	if err != nil {
		return nil, err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(loc.Bucket), Key: aws.String(loc.Key)})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return ioutil.ReadAll(out.Body)
}

func (s s3Store) Write(ctx context.Context, loc Location, data []byte, contentType string) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}
	input := &s3.PutObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	_, err = client.PutObject(ctx, input)
	return err
}
