// Package imgsplit partitions a raster image into five fixed-layout sections.
//
// The left half of the image is split into two equal stacked sections and the right half
// into three equal horizontal strips. Sections are independent pixel copies that can be
// previewed, encoded to PNG/JPEG/BMP/TIFF, bundled into a zip archive, or joined back.
package imgsplit
