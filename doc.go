// Package auth provides a small account service: password registration,
// login with signed session tokens, role gated routes, and admin
// provisioning.
//
// Accounts:
//   - A Directory holds every account. MemoryDirectory and BunDirectory
//     both serialize reads and writes so a duplicate email check and the
//     insert that follows it can never interleave with another writer.
//   - Passwords are stored as bcrypt hashes. Login compares against a decoy
//     hash when the email is unknown so failures take similar time.
//
// Tokens:
//   - TokenServiceImpl signs HS256 tokens carrying the account email as
//     subject, its role, and a 24 hour expiry. Tokens are not revocable.
//
// HTTP:
//   - RegisterAuthRoutes mounts the public login and register routes plus
//     the /admin and /user groups, each behind a jwtware gate that requires
//     an exact role. HTTPErrorHandler renders every failure as
//     {"error": "..."}.
//
// Activity sinks:
//   - ActivitySink is a best effort audit emitter used by Auther to describe
//     registration, login, and access denied events. Errors are logged and
//     never fail the request.
package auth
