// Package service contains the application's use cases: todo lists, their
// items, designations and user administration. It orchestrates domain objects
// and the store interfaces (internal/store) and owns the transactional
// boundaries.
//
// Two rules shape every operation that touches a user's data:
//
//  1. Ownership: a resource is fetched first, then handed to Authorize, which
//     refuses it unless its owner is the calling user. A missing resource
//     therefore yields a not-found error and a foreign one ErrNotOwned.
//  2. Bulk item mutations go through the Reconciler, which filters the
//     requested ids down to the caller's own items inside one transaction and
//     reports the rest as excluded rather than failing.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete store implementation.
package service
