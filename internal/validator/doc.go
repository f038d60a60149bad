// Package validator checks diagrams and the files that contain them.
//
// A Validator never fails on a bad diagram: grammar errors and parser
// panics become data in Outcome. Only reading a file can fail.
package validator
