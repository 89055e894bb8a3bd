// internal/app/system/limits/limits.go
package limits

// MaxJSONBody caps every API request body so a single request cannot
// exhaust memory while its JSON is decoded.
const MaxJSONBody = 1 << 20 // 1 MB
