// Package utils provides loose type coercion for values recovered from
// untyped sources such as parsed table literals and JSON documents.
package utils
