// Package revoke layers server-side revocation on top of the stateless token
// engine. It keeps a Redis deny list keyed by jti, each entry expiring
// together with the token it blocks, and builds single-use refresh rotation
// on top of it. The engine itself never consults this package; callers that
// need revocation check the store explicitly or go through Rotator.
package revoke
