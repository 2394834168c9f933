// Package refresh deduplicates concurrent token refresh attempts and
// circuit-breaks tokens the identity provider has rejected.
//
// The Coordinator keys in-flight refreshes by refresh-token value: while one
// provider call is pending, every other caller presenting the same token
// joins it and receives the same result. A token that fails with a 4xx is
// recorded in a Blocklist and short-circuited on subsequent attempts — a
// revoked token generates exactly one doomed provider call, not one per
// request.
//
//	coord := refresh.NewCoordinator(idpClient)
//
//	pair, err := coord.Refresh(ctx, refreshToken)
//
// The default blocklist is in-memory and process-scoped. Multi-instance
// deployments can share the bad-token set through RedisBlocklist instead.
package refresh
