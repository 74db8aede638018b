package r2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/kupo/internal/nav"
	"github.com/HaiFongPan/kupo/internal/utils"
)

const dirMode = fs.ModeDir | 0o755

// Store presents one bucket as a directory tree. Keys are split on "/";
// a directory exists when any key lives under its prefix, and empty
// directories are kept alive by a zero-byte "prefix/" marker object.
type Store struct {
	api    ObjectAPI
	bucket string
}

// NewStore creates a store over bucket
func NewStore(api ObjectAPI, bucket string) *Store {
	return &Store{api: api, bucket: bucket}
}

// Name implements store.Store
func (s *Store) Name() string {
	return "r2://" + s.bucket
}

// Stat implements store.Store
func (s *Store) Stat(ctx context.Context, p string) (nav.Entry, error) {
	p = cleanPath(p)
	if p == "/" {
		return dirEntry(p), nil
	}

	out, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(keyOf(p)),
	})
	if err == nil {
		return nav.Entry{
			Path:    p,
			Name:    path.Base(p),
			Kind:    nav.KindFile,
			Size:    aws.ToInt64(out.ContentLength),
			ModTime: aws.ToTime(out.LastModified),
			Mode:    0o644,
		}, nil
	}
	if err := classify(err, p); nav.KindOf(err) != nav.NotFound {
		return nav.Entry{}, err
	}

	isDir, err := s.hasChildren(ctx, p)
	if err != nil {
		return nav.Entry{}, err
	}
	if !isDir {
		return nav.Entry{}, nav.NewError(nav.NotFound, p, fs.ErrNotExist)
	}
	return dirEntry(p), nil
}

// ReadDir implements store.Store
func (s *Store) ReadDir(ctx context.Context, p string) ([]nav.Entry, error) {
	p = cleanPath(p)
	prefix := prefixOf(p)

	paginator := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var entries []nav.Entry
	found := prefix == ""
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classify(err, p)
		}

		for _, cp := range page.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			found = true
			if name == "" {
				continue
			}
			entries = append(entries, dirEntry(path.Join(p, name)))
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			found = true
			if key == prefix {
				continue
			}
			name := strings.TrimPrefix(key, prefix)
			entries = append(entries, nav.Entry{
				Path:    path.Join(p, name),
				Name:    name,
				Kind:    nav.KindFile,
				Size:    aws.ToInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
				Mode:    0o644,
			})
		}
	}

	if !found {
		entry, err := s.Stat(ctx, p)
		if err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			return nil, nav.NewError(nav.NotADirectory, p, nil)
		}
	}

	logrus.WithFields(logrus.Fields{"bucket": s.bucket, "prefix": prefix, "entries": len(entries)}).Debug("Listed prefix")
	return entries, nil
}

// CreateFile implements store.Store
func (s *Store) CreateFile(ctx context.Context, p string) error {
	p = cleanPath(p)
	if err := s.checkCreate(ctx, p); err != nil {
		return err
	}

	contentType, err := utils.DetectContentType(p, nil)
	if err != nil {
		contentType = "application/octet-stream"
	}
	return s.put(ctx, keyOf(p), p, contentType)
}

// CreateDir implements store.Store
func (s *Store) CreateDir(ctx context.Context, p string) error {
	p = cleanPath(p)
	if err := s.checkCreate(ctx, p); err != nil {
		return err
	}
	return s.put(ctx, prefixOf(p), p, "application/x-directory")
}

// Delete implements store.Store. Directories are removed key by key; a
// failed key does not stop the rest.
func (s *Store) Delete(ctx context.Context, p string) error {
	p = cleanPath(p)
	entry, err := s.Stat(ctx, p)
	if err != nil {
		return err
	}

	if !entry.IsDir() {
		return s.deleteKey(ctx, keyOf(p), p)
	}
	if p == "/" {
		return nav.NewError(nav.PermissionDenied, p, errors.New("refusing to empty the bucket"))
	}

	paginator := s3.NewListObjectsV2Paginator(s.api, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefixOf(p)),
	})

	var firstErr error
	failed, total := 0, 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return classify(err, p)
		}
		for _, obj := range page.Contents {
			total++
			key := aws.ToString(obj.Key)
			if err := s.deleteKey(ctx, key, p); err != nil {
				logrus.WithFields(logrus.Fields{"key": key, "error": err}).Error("Failed to delete object")
				failed++
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	if firstErr != nil {
		return nav.NewError(nav.KindOf(firstErr), p, fmt.Errorf("%d of %d objects not deleted: %w", failed, total, firstErr))
	}
	return nil
}

// Open implements store.Store
func (s *Store) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	p = cleanPath(p)
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(keyOf(p)),
	})
	if err != nil {
		return nil, classify(err, p)
	}
	return out.Body, nil
}

func (s *Store) checkCreate(ctx context.Context, p string) error {
	if _, err := s.Stat(ctx, p); err == nil {
		return nav.NewError(nav.AlreadyExists, p, fs.ErrExist)
	} else if nav.KindOf(err) != nav.NotFound {
		return err
	}

	parent, err := s.Stat(ctx, path.Dir(p))
	if err != nil {
		return err
	}
	if !parent.IsDir() {
		return nav.NewError(nav.NotADirectory, parent.Path, nil)
	}
	return nil
}

func (s *Store) put(ctx context.Context, key, p, contentType string) error {
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(""),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return classify(err, p)
	}
	logrus.WithFields(logrus.Fields{"bucket": s.bucket, "key": key}).Info("Created object")
	return nil
}

func (s *Store) deleteKey(ctx context.Context, key, p string) error {
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return classify(err, p)
	}
	logrus.WithFields(logrus.Fields{"bucket": s.bucket, "key": key}).Debug("Deleted object")
	return nil
}

func (s *Store) hasChildren(ctx context.Context, p string) (bool, error) {
	out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefixOf(p)),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, classify(err, p)
	}
	return len(out.Contents) > 0 || len(out.CommonPrefixes) > 0, nil
}

// classify maps S3 error codes onto navigation error kinds
func classify(err error, p string) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return nav.NewError(nav.NotFound, p, err)
		case "AccessDenied", "Forbidden", "AllAccessDisabled":
			return nav.NewError(nav.PermissionDenied, p, err)
		}
	}
	return nav.Classify(err, p)
}

func cleanPath(p string) string {
	return path.Clean("/" + p)
}

// keyOf turns "/a/b" into the object key "a/b"
func keyOf(p string) string {
	return strings.TrimPrefix(cleanPath(p), "/")
}

// prefixOf turns "/a/b" into the listing prefix "a/b/" and "/" into ""
func prefixOf(p string) string {
	key := keyOf(p)
	if key == "" {
		return ""
	}
	return key + "/"
}

func dirEntry(p string) nav.Entry {
	name := path.Base(p)
	return nav.Entry{Path: p, Name: name, Kind: nav.KindDir, Mode: dirMode}
}
