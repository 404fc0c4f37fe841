// Package auth implements the AISWEI API gateway request signing scheme.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"strings"
)

// Canonicalize appends the apikey, token and isnos parameters to the endpoint
// and sorts every key=value component of the query as a whole string.
// The gateway recomputes the signature over this exact ordering.
func Canonicalize(endpoint string, creds Credentials) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	endpoint += sep + "apikey=" + creds.APIKey
	endpoint += "&token=" + creds.Token
	endpoint += "&isnos=" + creds.SN

	path, query, ok := strings.Cut(endpoint, "?")
	if !ok {
		return endpoint
	}

	parts := strings.Split(query, "&")
	sort.Strings(parts)
	return path + "?" + strings.Join(parts, "&")
}

// StringToSign builds the gateway signing string. Content-MD5 and Date are
// never sent, so their lines stay empty.
func StringToSign(method, canonical, appKey string) string {
	var sb strings.Builder
	sb.WriteString(method)
	sb.WriteString("\n")
	sb.WriteString(accept)
	sb.WriteString("\n\n")
	sb.WriteString(contentType)
	sb.WriteString("\n\n")
	sb.WriteString(headerKey + ":" + appKey)
	sb.WriteString("\n")
	sb.WriteString(canonical)
	return sb.String()
}

// Sign returns the base64 encoded HMAC-SHA256 of s keyed by secret.
func Sign(s, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(s))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
