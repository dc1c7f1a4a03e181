// Package publish pushes benchmark results documents to the git results
// repository. The deploy key arrives through the
// PYMUPDF_PERFORMANCE_RESULTS_RW environment variable; when it is absent the
// publisher skips quietly so local runs never fail for lack of credentials.
package publish
