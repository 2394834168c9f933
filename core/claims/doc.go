// Package claims decodes issued-at/expiry claims from access tokens without
// verifying signatures. Claims are used to decide when to refresh a token;
// authorization is always enforced by the resource server that accepts it.
package claims
