package auth

import "net/http"

// Header values fixed by the AISWEI API gateway.
const (
	userAgent   = "app 1.0"
	contentType = "application/json; charset=UTF-8"
	accept      = "application/json"

	headerKey           = "X-Ca-Key"
	headerSignature     = "X-Ca-Signature"
	headerSignedHeaders = "X-Ca-Signature-Headers"
)

// Credentials holds the Pro user secrets issued by the vendor portal.
// Values are copied on construction and never mutated.
type Credentials struct {
	AppKey    string
	AppSecret string
	APIKey    string
	Token     string
	SN        string
}

// SignedRequest is an endpoint ready to be sent: the canonical endpoint
// (path plus sorted query) and the full header set including the signature.
type SignedRequest struct {
	Method       string
	Endpoint     string
	StringToSign string
	Header       http.Header
}

// NewSignedRequest canonicalizes the endpoint and signs it with the app secret.
// The returned Endpoint is the exact string covered by the signature.
func NewSignedRequest(endpoint string, creds Credentials) SignedRequest {
	canonical := Canonicalize(endpoint, creds)
	sts := StringToSign(http.MethodGet, canonical, creds.AppKey)

	h := make(http.Header)
	h.Set("User-Agent", userAgent)
	h.Set("Content-Type", contentType)
	h.Set("Accept", accept)
	h.Set(headerSignedHeaders, headerKey)
	h.Set(headerKey, creds.AppKey)
	h.Set(headerSignature, Sign(sts, creds.AppSecret))

	return SignedRequest{
		Method:       http.MethodGet,
		Endpoint:     canonical,
		StringToSign: sts,
		Header:       h,
	}
}
