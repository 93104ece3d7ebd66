/* Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/gregjones/httpcache/test"
	"github.com/mikeb26/tennistour-entrybot/internal"
)

func TestS3Cache(t *testing.T) {
	// Initialize S3-backed cache
	cache := New(context.Background(), internal.WebCacheBucket, false, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err))
	}

	test.Cache(t, cache)
}

func TestS3CacheWithGzip(t *testing.T) {
	// Initialize S3-backed cache
	cache := New(context.Background(), internal.WebCacheBucket, true, true)
	err := cache.Init()
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			internal.WebCacheBucket, err))
	}

	test.Cache(t, cache)
}

func TestCacheKeyToObjectKey(t *testing.T) {
	cache := New(context.Background(), internal.WebCacheBucket, false, true)
	key := cache.cacheKeyToObjectKey("https://example.com/page")
	if !strings.HasPrefix(key, "/s3cache/") {
		t.Errorf("object key %q missing prefix", key)
	}
	if strings.HasSuffix(key, ".gz") {
		t.Errorf("object key %q should not carry gzip suffix", key)
	}

	gzCache := New(context.Background(), internal.WebCacheBucket, true, true)
	gzKey := gzCache.cacheKeyToObjectKey("https://example.com/page")
	if !strings.HasSuffix(gzKey, ".gz") {
		t.Errorf("object key %q missing gzip suffix", gzKey)
	}
	if gzKey == key {
		t.Errorf("gzip and plain object keys should differ")
	}
}
