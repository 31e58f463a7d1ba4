// Package provider declares the collaborator interfaces the firewall
// consumes but never implements itself: package/signature/permission
// queries, the host dispatcher's coarse lock, and its settings
// reader. The host satisfies these; tests mock them.
package provider

import "sync"

// Android reserves UIDs below FirstAppUID for the system and its
// services; a UID at or above it backs a user-installed app.
const FirstAppUID int32 = 10000

// RootUID is always classified as "system", independent of the
// FirstAppUID threshold.
const RootUID int32 = 0

// PackageProvider answers package- and signature-scoped queries a UID
// may raise. A UID can back more than one package, hence the slice
// returns.
type PackageProvider interface {
	// Packages returns every package name installed under uid.
	Packages(uid int32) []string
	// Signatures returns the signing certificates for uid's packages.
	Signatures(uid int32) [][]byte
	// PlatformSignature returns the signature shared by the base
	// operating-system packages.
	PlatformSignature() []byte
}

// Collaborator is the callback the host dispatcher hands the firewall:
// a permission check, a handle to the dispatcher's coarse lock, the
// settings reader "provisioned" predicates read, and the caller
// identity drop used on the query path.
type Collaborator interface {
	// PermissionGranted reports whether the permission is held by the
	// given pid/uid pair, checked against a component owned by
	// owningUid (exported or not, per the host's own access rules).
	PermissionGranted(permission string, pid, uid, owningUid int32, exported bool) bool
	// Lock returns the dispatcher's coarse lock. Dispatch-path callers
	// already hold it; the firewall acquires it only to publish a
	// freshly loaded rule store.
	Lock() sync.Locker
	// DeviceProvisioned reports the device-provisioned setting the
	// "provisioned" predicate reads.
	DeviceProvisioned() bool
	// DropIdentity clears the calling app's identity for the duration
	// of a query-path provider call, so package/permission lookups see
	// the firewall's own identity rather than the caller's. It returns
	// the restore function the caller must invoke on every exit path.
	DropIdentity() (restore func())
}

// IsSystemUID classifies uid using the platform's fixed threshold:
// anything below FirstAppUID, or the root UID itself.
func IsSystemUID(uid int32) bool {
	return uid < FirstAppUID || uid == RootUID
}
