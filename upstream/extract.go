package upstream

import "strings"

// The upstream auth endpoints have shipped several response shapes. Rather
// than guessing ad hoc at each call site, the supported paths are spelled out
// here, tried in order. Shape ambiguity is an upstream contract bug; this
// table is the transitional compensation for it.
var tokenPaths = []string{
	"token",
	"accessToken",
	"access_token",
	"jwt",
	"data.token",
	"data.accessToken",
	"data.access_token",
	"auth.token",
	"auth.accessToken",
	"data.auth.accessToken",
	"data.result.token",
	"data.result.accessToken",
}

var userPaths = []string{
	"user",
	"data.user",
	"profile",
	"data.profile",
	"admin",
	"data.admin",
	"data.result.user",
}

// TokenFromBody hunts the bearer token across the documented response paths.
// Returns "" when no path holds a non-empty string.
func TokenFromBody(body map[string]interface{}) string {
	for _, path := range tokenPaths {
		if s, ok := lookupPath(body, path).(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// UserFromBody hunts the embedded user/profile object across the documented
// response paths. Returns nil when no path holds an object.
func UserFromBody(body map[string]interface{}) map[string]interface{} {
	for _, path := range userPaths {
		if m, ok := lookupPath(body, path).(map[string]interface{}); ok && len(m) > 0 {
			return m
		}
	}
	return nil
}

// lookupPath walks a dotted path through nested JSON objects.
func lookupPath(body map[string]interface{}, path string) interface{} {
	var cur interface{} = body
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = m[part]
		if !ok {
			return nil
		}
	}
	return cur
}
