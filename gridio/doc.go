// Package gridio provides RasterSource and RasterSink implementations for
// the focal engine: an in-memory grid and TIFF import/export.
//
// TIFF support covers single-band 8- and 16-bit grayscale images, the
// common container for heightmaps. Export rescales a float grid to 16 bits
// and reports the scale so values can be recovered.
package gridio
