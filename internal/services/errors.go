// Package services defines the business logic for domains, queries,
// citations, briefs, and bulk operations. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer; translation
// into user-facing messages or HTTP status codes is performed at the handler
// layer. Each value corresponds to one of the error kinds the API must keep
// distinguishable: quota, duplicate, entitlement, validation, and not-found.
package services

import "errors"

var (
	// ErrQuotaExceeded indicates that an add operation would exceed the
	// plan's domain or query limit. The store is never called in this case.
	ErrQuotaExceeded = errors.New("plan quota exceeded")

	// ErrDuplicateDomain indicates that the owner already tracks a domain
	// with the same normalized hostname.
	ErrDuplicateDomain = errors.New("domain already exists")

	// ErrNotEntitled is returned when an operation requires a feature or
	// engine outside the caller's plan and the policy is report-and-refuse
	// (feature-gated actions, as opposed to the silent engine filter at
	// query creation).
	ErrNotEntitled = errors.New("plan does not include this feature")

	// ErrEmptyHostname is returned when a domain is created with a blank
	// hostname after normalization.
	ErrEmptyHostname = errors.New("hostname is empty")

	// ErrEmptyQueryText is returned when a query is created with blank text.
	ErrEmptyQueryText = errors.New("query text is empty")

	// ErrInvalidStatus is returned when a status update names a value
	// outside the entity's enum, or a brief transition moves backwards.
	ErrInvalidStatus = errors.New("invalid status transition")

	// ErrDomainNotFound indicates that the requested domain does not exist
	// or is not accessible to the current user.
	ErrDomainNotFound = errors.New("domain not found")

	// ErrQueryNotFound indicates that the requested query does not exist,
	// was deleted, or is not accessible to the current user.
	ErrQueryNotFound = errors.New("query not found")

	// ErrCitationNotFound indicates that the requested citation does not
	// exist or is not accessible to the current user.
	ErrCitationNotFound = errors.New("citation not found")

	// ErrBriefNotFound indicates that the requested brief does not exist or
	// is not accessible to the current user.
	ErrBriefNotFound = errors.New("brief not found")

	// ErrUnknownBulkOp is returned for bulk requests naming an operation or
	// entity type outside the supported set.
	ErrUnknownBulkOp = errors.New("unsupported bulk operation")
)
