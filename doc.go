// Package accounts implements a small user account service: bcrypt
// credential hashing, HS256 bearer tokens, and a Bun backed user
// repository, exposed over five Fiber routes.
//
// Tokens:
//   - TokenService issues and validates signed tokens whose subject is
//     the account username. Validation collapses every failure mode into
//     a single opaque error so callers cannot distinguish an expired
//     token from a tampered one.
//
// Identity resolution:
//   - ProtectedRoute extracts the bearer token, validates it, and loads
//     the matching user row. The resolved user is stored both in Fiber
//     locals and in the request context, see CurrentUser and FromContext.
//
// Mutations:
//   - Account writes go through message handlers (RegisterUserMessage,
//     UpdateUserMessage, DeleteUserMessage) so the HTTP layer stays a
//     thin translation of payloads into commands.
package accounts
