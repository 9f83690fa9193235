// Package normalize converts raw extracted text into canonical field
// values: ISO dates, 24-hour times, numeric prices with tiered price
// categories, and keyword-inferred event categories.
package normalize
