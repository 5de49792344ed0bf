// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package codebase

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/unison-tools/uniscope/lib/codec"
	"github.com/unison-tools/uniscope/lib/ref"
)

// Cache is a content-addressed disk cache for definition response
// bodies. The file name is the BLAKE3 hash of the reference's text
// form; the file holds a CBOR envelope with the zstd-compressed body
// plus a digest of the uncompressed bytes.
//
// Every failure on the read path — absent file, truncated envelope,
// digest mismatch — is a silent miss: the caller refetches and the
// entry is rewritten. The cache never fails a fetch.
type Cache struct {
	dir    string
	logger *slog.Logger
}

// cacheEntry is the on-disk envelope. Ref guards against file-name
// collisions and makes entries self-describing under inspection;
// Digest and Size verify the payload after decompression.
type cacheEntry struct {
	Ref    string `cbor:"ref"`
	Size   uint64 `cbor:"size"`
	Digest []byte `cbor:"digest"`
	Body   []byte `cbor:"body"`
}

// zstdEncoder and zstdDecoder are shared across all cache instances.
// Both are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codebase: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codebase: zstd decoder initialization failed: " + err.Error())
	}
}

// NewCache opens (creating if needed) a cache directory.
func NewCache(dir string, logger *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("codebase: creating cache directory: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cache{dir: dir, logger: logger}, nil
}

// entryPath returns the file path for a reference's cache entry.
func (cache *Cache) entryPath(reference ref.Reference) string {
	sum := blake3.Sum256([]byte(reference.String()))
	return filepath.Join(cache.dir, hex.EncodeToString(sum[:])+".def")
}

// Get returns the cached response body for a reference, or reports a
// miss.
func (cache *Cache) Get(reference ref.Reference) ([]byte, bool) {
	path := cache.entryPath(reference)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	if err := codec.Unmarshal(data, &entry); err != nil {
		cache.evictCorrupt(path, reference, err)
		return nil, false
	}
	if entry.Ref != reference.String() {
		cache.evictCorrupt(path, reference, fmt.Errorf("entry is for %q", entry.Ref))
		return nil, false
	}

	body, err := zstdDecoder.DecodeAll(entry.Body, make([]byte, 0, entry.Size))
	if err != nil {
		cache.evictCorrupt(path, reference, err)
		return nil, false
	}
	sum := blake3.Sum256(body)
	if uint64(len(body)) != entry.Size || !bytes.Equal(sum[:], entry.Digest) {
		cache.evictCorrupt(path, reference, fmt.Errorf("payload digest mismatch"))
		return nil, false
	}
	return body, true
}

// Put stores a response body for a reference. Write failures are
// logged and swallowed: a cache that cannot write degrades to a
// pass-through, it does not fail fetches.
func (cache *Cache) Put(reference ref.Reference, body []byte) {
	sum := blake3.Sum256(body)
	entry := cacheEntry{
		Ref:    reference.String(),
		Size:   uint64(len(body)),
		Digest: sum[:],
		Body:   zstdEncoder.EncodeAll(body, nil),
	}
	encoded, err := codec.Marshal(entry)
	if err != nil {
		cache.logger.Warn("encoding cache entry failed", "ref", reference.String(), "error", err)
		return
	}

	// Write through a temporary file so a crash mid-write leaves no
	// truncated entry behind.
	path := cache.entryPath(reference)
	temporary, err := os.CreateTemp(cache.dir, ".tmp-*")
	if err != nil {
		cache.logger.Warn("writing cache entry failed", "ref", reference.String(), "error", err)
		return
	}
	_, writeErr := temporary.Write(encoded)
	closeErr := temporary.Close()
	if writeErr != nil || closeErr != nil {
		os.Remove(temporary.Name())
		cache.logger.Warn("writing cache entry failed", "ref", reference.String(),
			"error", fmt.Sprintf("write: %v, close: %v", writeErr, closeErr))
		return
	}
	if err := os.Rename(temporary.Name(), path); err != nil {
		os.Remove(temporary.Name())
		cache.logger.Warn("writing cache entry failed", "ref", reference.String(), "error", err)
	}
}

// evictCorrupt removes an unreadable entry so the next fetch rewrites
// it cleanly.
func (cache *Cache) evictCorrupt(path string, reference ref.Reference, err error) {
	cache.logger.Debug("evicting corrupt cache entry", "ref", reference.String(), "error", err)
	os.Remove(path)
}
