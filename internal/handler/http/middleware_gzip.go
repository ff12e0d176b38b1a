// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var gzipReaderPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

// withGzipRequest transparently decompresses request bodies sent with
// "Content-Encoding: gzip", such as large bulk-upsert batches. Response
// compression is left to chi's Compress middleware.
func withGzipRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !strings.Contains(req.Header.Get("Content-Encoding"), "gzip") || req.Body == nil {
			next.ServeHTTP(w, req)
			return
		}

		gzipReader := gzipReaderPool.Get().(*gzip.Reader)
		if err := gzipReader.Reset(req.Body); err != nil {
			gzipReaderPool.Put(gzipReader)
			http.Error(w, "Invalid gzip data", http.StatusBadRequest)
			return
		}

		original := req.Body
		req.Body = &wrappedReadCloser{
			Reader: gzipReader,
			OnClose: func() {
				_ = gzipReader.Close()
				gzipReaderPool.Put(gzipReader)
				_ = original.Close()
			},
		}
		req.Header.Del("Content-Encoding")
		req.Header.Del("Content-Length")
		req.ContentLength = -1

		next.ServeHTTP(w, req)
	})
}

type wrappedReadCloser struct {
	io.Reader
	OnClose func()
	once    sync.Once
}

func (w *wrappedReadCloser) Close() error {
	if w.OnClose != nil {
		w.once.Do(w.OnClose)
	}
	return nil
}
