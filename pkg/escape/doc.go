// Package escape defines the single-function escaping contract used by the
// htmlstring renderer together with the implementations shipped with the
// module: an entity encoder backed by github.com/google/safehtml and
// policy-driven sanitizers backed by github.com/microcosm-cc/bluemonday.
// Escapers are stateless once built and safe for concurrent use.
package escape
