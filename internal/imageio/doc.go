// Package imageio loads microscopy frames for the optional Image column.
//
// Decoding goes through imaging.Decode with EXIF auto-orientation; TIFF, BMP
// and WebP decoders come from golang.org/x/image, PNG, JPEG and GIF from the
// standard library. Frames larger than Config.MaxDimension or
// Config.MaxPixels are downscaled with a Lanczos filter.
//
// LoadAll runs on an errgroup bounded by Config.Workers and writes each
// result at its input index, so images stay aligned with the file list.
package imageio
