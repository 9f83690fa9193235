// Package integrate turns raw extractions into canonical events. It
// rejects records missing required fields, applies the normalizers and
// attribute inference, assigns run-unique monotonic ids, and stamps the
// lifecycle fields every downstream consumer expects.
package integrate
