package imageio

import (
	"sort"
	"strings"

	// Registered with image.Decode, which imaging.Decode delegates to.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FormatUnknown labels files whose format could not be determined.
const FormatUnknown = "unknown"

// suffixFormats maps lowercase file suffixes to the image.RegisterFormat
// name of a decoder linked into this binary.
var suffixFormats = map[string]string{
	".tif":  "tiff",
	".tiff": "tiff",
	".png":  "png",
	".jpg":  "jpeg",
	".jpeg": "jpeg",
	".gif":  "gif",
	".bmp":  "bmp",
	".webp": "webp",
}

// FormatForSuffix returns the decoder name for a suffix such as ".TIF".
func FormatForSuffix(suffix string) (string, bool) {
	f, ok := suffixFormats[strings.ToLower(suffix)]
	return f, ok
}

// Decodable reports whether files ending in suffix can be loaded.
func Decodable(suffix string) bool {
	_, ok := FormatForSuffix(suffix)
	return ok
}

// Suffixes lists every decodable suffix, sorted.
func Suffixes() []string {
	out := make([]string, 0, len(suffixFormats))
	for s := range suffixFormats {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
