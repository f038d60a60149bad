// Package runner resolves command-line inputs to files, validates them
// one at a time and reports the aggregated result.
//
// Input resolution order:
//
//  1. "-" reads one diagram from standard input;
//  2. an existing regular file is validated by extension;
//  3. an existing directory is walked recursively;
//  4. anything else is expanded as a doublestar glob.
package runner
