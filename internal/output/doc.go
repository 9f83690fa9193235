// Package output serializes canonical events. It produces the JSON
// document form and the JavaScript source-module form, both of which
// parse back losslessly, plus a flat CSV view and a text run summary.
package output
