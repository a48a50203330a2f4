package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"
)

// Package storage holds submitted file bytes in an S3-compatible object store.
// The document core never reads these bytes; it keeps only the object key as the file location.

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
}

// Storage is the blob store used for submitted files.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// DocumentKey builds the object key for an uploaded file: documents/<uploader>/<id><ext>.
// The extension is taken from the original file name and lower-cased.
func DocumentKey(uploaderID, documentID, originalFilename string) string {
	ext := strings.ToLower(path.Ext(originalFilename))
	return path.Join("documents", sanitizeSegment(uploaderID), documentID+ext)
}

// UploaderPrefix is the key prefix under which every file of an uploader is stored.
func UploaderPrefix(uploaderID string) string {
	return path.Join("documents", sanitizeSegment(uploaderID)) + "/"
}

// OwnedBy reports whether key is a clean object key under the uploader's prefix.
func OwnedBy(key, uploaderID string) bool {
	if key == "" || path.Clean(key) != key {
		return false
	}
	return strings.HasPrefix(key, UploaderPrefix(uploaderID))
}

func sanitizeSegment(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(s)
	if s == "" {
		return "anonymous"
	}
	return s
}
