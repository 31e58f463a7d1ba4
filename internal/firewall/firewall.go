// Package firewall is the dispatch façade: five enforcement entry
// points and four query variants. The intent-dispatch entries prune
// the rule set through resolver.Candidates; CheckQueryPackage scans
// the flat package list. All then run full predicate evaluation, with
// early exit once both the block and log outcomes are known.
package firewall

import (
	"github.com/intentfw/ifw/internal/audit"
	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/predicate"
	"github.com/intentfw/ifw/internal/provider"
	"github.com/intentfw/ifw/internal/rule"
	"github.com/intentfw/ifw/internal/store"
)

// Firewall composes the live rule store with the host collaborator and
// an audit sink. Callers obtain one per process and call its entry
// points on the dispatch path.
type Firewall struct {
	Handle   *store.Handle
	Packages provider.PackageProvider
	Collab   provider.Collaborator
	Audit    audit.Sink
}

func New(handle *store.Handle, packages provider.PackageProvider, collab provider.Collaborator, sink audit.Sink) *Firewall {
	if sink == nil {
		sink = audit.NopSink{}
	}
	return &Firewall{Handle: handle, Packages: packages, Collab: collab, Audit: sink}
}

func (fw *Firewall) env() *predicate.Env {
	return &predicate.Env{Packages: fw.Packages, Collab: fw.Collab}
}

// evaluate is the shared loop over an intent-dispatch candidate set:
// block is true if any matching rule blocks, logIt is true if any
// matching rule wants it logged. Enforcement entries read the
// block/log bits, query entries the blockquery/logquery bits — the
// match contract itself is the same on both. Results only ever
// OR-combine, so evaluation stops once both bits are true.
func evaluate(env *predicate.Env, dc *predicate.DispatchCtx, candidates []*rule.Rule, queryBits bool) (block, logIt bool) {
	for _, r := range candidates {
		if block && logIt {
			break
		}
		if !r.Matches(env, dc) {
			continue
		}
		if queryBits {
			block = block || r.Effects.BlockQuery
			logIt = logIt || r.Effects.LogOnQuery
		} else {
			block = block || r.Effects.Block
			logIt = logIt || r.Effects.LogOnBlock
		}
	}
	return block, logIt
}

// evaluatePackage is the phase-2 loop over the flat package rule list,
// under the matchesPackage contract. Only query effect bits exist for
// package visibility.
func evaluatePackage(env *predicate.Env, pc *predicate.PackageCtx, candidates []*rule.Rule) (block, logIt bool) {
	for _, r := range candidates {
		if block && logIt {
			break
		}
		if !r.MatchesPackage(env, pc) {
			continue
		}
		block = block || r.Effects.BlockQuery
		logIt = logIt || r.Effects.LogOnQuery
	}
	return block, logIt
}

func decisionLabel(block, query bool) string {
	label := "allow"
	if block {
		label = "block"
	}
	if query {
		return "query-" + label
	}
	return label
}

// EnforceRequest carries the arguments every intent-dispatch entry
// shares, plus the caller's package list for the audit record's
// callerPackageCount/callerPackagesJoined fields.
type EnforceRequest struct {
	Resolved       intent.Component
	Intent         *intent.Intent
	CallerUID      int32
	CallerPID      int32
	ResolvedType   string
	ReceivingUID   int32
	UserID         int32
	CallerPackages []string
}

func (req *EnforceRequest) dispatchCtx() *predicate.DispatchCtx {
	return &predicate.DispatchCtx{
		Resolved:     req.Resolved,
		Intent:       req.Intent,
		CallerUID:    req.CallerUID,
		CallerPID:    req.CallerPID,
		ResolvedType: req.ResolvedType,
		ReceivingUID: req.ReceivingUID,
		UserID:       req.UserID,
	}
}

func (fw *Firewall) check(kind intent.Kind, req EnforceRequest) bool {
	snap := fw.Handle.Snapshot()
	candidates := snap.Resolver(kind).Candidates(req.Intent, &req.Resolved)
	block, logIt := evaluate(fw.env(), req.dispatchCtx(), candidates, false)

	if logIt {
		ev := audit.NewEvent(kind, req.Resolved, req.CallerUID, req.CallerPackages, req.Intent, req.ResolvedType, decisionLabel(block, false))
		_ = fw.Audit.Write(ev)
	}
	return !block
}

// CheckStartActivity is an enforcement-path entry; the caller already
// holds the dispatcher's coarse lock and passes the caller's identity
// unadjusted.
func (fw *Firewall) CheckStartActivity(req EnforceRequest) bool {
	return fw.check(intent.KindActivity, req)
}

func (fw *Firewall) CheckService(req EnforceRequest) bool {
	return fw.check(intent.KindService, req)
}

func (fw *Firewall) CheckBroadcast(req EnforceRequest) bool {
	return fw.check(intent.KindBroadcast, req)
}

func (fw *Firewall) CheckProvider(req EnforceRequest) bool {
	return fw.check(intent.KindProvider, req)
}

// PackageQueryRequest carries the package-path arguments; no intent
// is involved.
type PackageQueryRequest struct {
	TargetPackage  string
	CallerUID      int32
	TargetUID      int32
	UserID         int32
	CallerPackages []string
}

// CheckQueryPackage runs on the enforcement path despite its name:
// the dispatcher's lock is held and caller identity is not adjusted.
// It evaluates the package contract over the flat package list and
// reads the query effect bits, the only bits package visibility has.
func (fw *Firewall) CheckQueryPackage(req PackageQueryRequest) bool {
	snap := fw.Handle.Snapshot()
	pc := &predicate.PackageCtx{
		TargetPackage: req.TargetPackage,
		CallerUID:     req.CallerUID,
		TargetUID:     req.TargetUID,
		UserID:        req.UserID,
	}
	block, logIt := evaluatePackage(fw.env(), pc, snap.Package)
	if logIt {
		ev := audit.NewEvent(intent.KindPackage, intent.Component{}, req.CallerUID, req.CallerPackages, nil, "", decisionLabel(block, true))
		_ = fw.Audit.Write(ev)
	}
	return !block
}

// checkQuery is the shared body of the four CheckQuery* entries. The
// match contract is the same intent-dispatch contract the enforcement
// entries run — a query asks whether this same dispatch would be
// visible — but the blockquery/logquery bits decide the outcome.
// Caller identity is dropped for the duration of the evaluation,
// which may call into Packages/Collab, and restored on every exit
// path via defer.
func (fw *Firewall) checkQuery(kind intent.Kind, req EnforceRequest) bool {
	restore := fw.Collab.DropIdentity()
	defer restore()

	snap := fw.Handle.Snapshot()
	candidates := snap.Resolver(kind).Candidates(req.Intent, &req.Resolved)
	block, logIt := evaluate(fw.env(), req.dispatchCtx(), candidates, true)

	if logIt {
		ev := audit.NewEvent(kind, req.Resolved, req.CallerUID, req.CallerPackages, req.Intent, req.ResolvedType, decisionLabel(block, true))
		_ = fw.Audit.Write(ev)
	}
	return !block
}

func (fw *Firewall) CheckQueryActivity(req EnforceRequest) bool {
	return fw.checkQuery(intent.KindActivity, req)
}

func (fw *Firewall) CheckQueryService(req EnforceRequest) bool {
	return fw.checkQuery(intent.KindService, req)
}

func (fw *Firewall) CheckQueryReceiver(req EnforceRequest) bool {
	return fw.checkQuery(intent.KindBroadcast, req)
}

func (fw *Firewall) CheckQueryProvider(req EnforceRequest) bool {
	return fw.checkQuery(intent.KindProvider, req)
}
