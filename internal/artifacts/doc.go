// Package artifacts writes the fixed set of files produced by one analysis
// run: the text reports and the combined, gzip-compressed data table.
package artifacts
