package api

import (
	"net/http"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// compressThreshold is the minimum payload size worth compressing
const compressThreshold = 1024

var zstdEncoder, _ = zstd.NewWriter(nil,
	zstd.WithEncoderLevel(zstd.SpeedDefault))

// writeMaybeCompressed writes data zstd-compressed when the client
// advertises support and the payload is large enough to benefit.
// Headers other than Content-Encoding must be set before calling.
func writeMaybeCompressed(w http.ResponseWriter, r *http.Request, data []byte) {
	if len(data) >= compressThreshold && acceptsZstd(r) {
		w.Header().Set("Content-Encoding", "zstd")
		w.Write(zstdEncoder.EncodeAll(data, nil))
		return
	}
	w.Write(data)
}

func acceptsZstd(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		// Strip quality values like "zstd;q=0.8"
		enc = strings.TrimSpace(enc)
		if idx := strings.Index(enc, ";"); idx != -1 {
			enc = enc[:idx]
		}
		if strings.EqualFold(enc, "zstd") {
			return true
		}
	}
	return false
}
