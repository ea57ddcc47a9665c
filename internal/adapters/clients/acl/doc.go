// Package acl is the anti-corruption layer between the remote quote source
// and the domain.
//
// The remote speaks its own dialect: posts with a title, a body and a numeric
// id. Adapters here decode those DTOs, translate them into [domain.Quote]
// values, drop whatever fails validation and turn every transport or status
// failure into a domain error:
//
//   - 404 → [domain.ErrNotFound]
//   - 409 → [domain.ErrConflict]
//   - 400/422 and other 4xx → [domain.ErrValidation]
//   - 401/403 → [domain.ErrForbidden]
//   - 5xx, 429, network, open circuit, exhausted retries → [domain.ErrUnavailable]
//
// External DTOs never leave the package.
package acl
