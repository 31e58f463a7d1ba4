package predicate

import (
	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/provider"
)

// Env carries the back-references a predicate needs to reach the host:
// the package/signature provider and the dispatcher collaborator.
type Env struct {
	Packages provider.PackageProvider
	Collab   provider.Collaborator
}

// DispatchCtx is the argument to Matches: the resolved target, the
// intent payload, and the identities on both ends of the dispatch.
type DispatchCtx struct {
	Resolved     intent.Component
	Intent       *intent.Intent
	CallerUID    int32
	CallerPID    int32
	ResolvedType string
	ReceivingUID int32
	UserID       int32
}

// PackageCtx is the argument to MatchesPackage: a package-visibility
// query carries no intent and no resolved component, only the two
// identities and the package being asked about.
type PackageCtx struct {
	TargetPackage string
	CallerUID     int32
	TargetUID     int32
	UserID        int32
}

// Predicate is the uniform contract every leaf and combinator exposes.
// A predicate that cannot evaluate (missing provider data, a remote
// call failing) returns false — not matching lets other rules decide.
type Predicate interface {
	Matches(env *Env, dc *DispatchCtx) bool
	MatchesPackage(env *Env, pc *PackageCtx) bool
}
