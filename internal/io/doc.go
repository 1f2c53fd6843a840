// Package ioutils provides file system and image processing utilities.
//
// # File Operations
//
//	// Fail early if a file cannot be rewritten
//	err := ioutils.CheckWritable("/music/song.flac")
//
//	// Replace a file's contents without leaving partial writes behind
//	err := ioutils.WriteFileAtomic("/music/song.flac", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/path/to/new/directory")
//
// # Image Processing
//
// The ImageService scales embedded cover art for preview:
//
//	svc := ioutils.NewImageService()
//	thumb, _ := svc.ResizeImage(ctx, artwork, 300, 300)
package ioutils
