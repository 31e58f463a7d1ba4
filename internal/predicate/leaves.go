package predicate

import (
	"bytes"

	"github.com/intentfw/ifw/internal/provider"
)

// Category matches if the intent carries the named category.
type Category struct {
	Name string
}

func (c *Category) Matches(env *Env, dc *DispatchCtx) bool {
	if dc.Intent == nil {
		return false
	}
	return dc.Intent.HasCategory(c.Name)
}

func (c *Category) MatchesPackage(env *Env, pc *PackageCtx) bool { return false }

// Port matches if the intent's data URI carries the listed numeric
// port, exactly or within an inclusive [Low, High] range.
type Port struct {
	Low, High int
}

// NewExactPort builds a single-value port predicate.
func NewExactPort(port int) *Port { return &Port{Low: port, High: port} }

func (p *Port) Matches(env *Env, dc *DispatchCtx) bool {
	if dc.Intent == nil || dc.Intent.Port <= 0 {
		return false
	}
	return dc.Intent.Port >= p.Low && dc.Intent.Port <= p.High
}

func (p *Port) MatchesPackage(env *Env, pc *PackageCtx) bool { return false }

// Class is the sender/target classification: signed by the platform,
// a system UID, or neither.
type Class int

const (
	ClassSignature Class = iota
	ClassSystem
	ClassUser
)

func ClassFromAttr(s string) (Class, bool) {
	switch s {
	case "signature":
		return ClassSignature, true
	case "system":
		return ClassSystem, true
	case "user":
		return ClassUser, true
	default:
		return 0, false
	}
}

func classify(env *Env, uid int32) Class {
	if env == nil || env.Packages == nil {
		return ClassUser
	}
	platform := env.Packages.PlatformSignature()
	if len(platform) > 0 {
		for _, sig := range env.Packages.Signatures(uid) {
			if bytes.Equal(sig, platform) {
				return ClassSignature
			}
		}
	}
	if provider.IsSystemUID(uid) {
		return ClassSystem
	}
	return ClassUser
}

// Sender classifies the caller UID.
type Sender struct{ Want Class }

func (s *Sender) Matches(env *Env, dc *DispatchCtx) bool {
	return classify(env, dc.CallerUID) == s.Want
}

func (s *Sender) MatchesPackage(env *Env, pc *PackageCtx) bool {
	return classify(env, pc.CallerUID) == s.Want
}

// Target classifies the resolved target's (receiving) UID.
type Target struct{ Want Class }

func (t *Target) Matches(env *Env, dc *DispatchCtx) bool {
	return classify(env, dc.ReceivingUID) == t.Want
}

func (t *Target) MatchesPackage(env *Env, pc *PackageCtx) bool {
	return classify(env, pc.TargetUID) == t.Want
}

// SenderPackage matches if Name is among the caller UID's packages.
type SenderPackage struct{ Name string }

func (s *SenderPackage) Matches(env *Env, dc *DispatchCtx) bool {
	return hasPackage(env, dc.CallerUID, s.Name)
}

func (s *SenderPackage) MatchesPackage(env *Env, pc *PackageCtx) bool {
	return hasPackage(env, pc.CallerUID, s.Name)
}

// TargetPackage matches if Name equals the resolved target's package.
type TargetPackage struct{ Name string }

func (t *TargetPackage) Matches(env *Env, dc *DispatchCtx) bool {
	return dc.Resolved.Package == t.Name
}

func (t *TargetPackage) MatchesPackage(env *Env, pc *PackageCtx) bool {
	return pc.TargetPackage == t.Name
}

func hasPackage(env *Env, uid int32, name string) bool {
	if env == nil || env.Packages == nil {
		return false
	}
	for _, pkg := range env.Packages.Packages(uid) {
		if pkg == name {
			return true
		}
	}
	return false
}

// SenderPermission matches if the caller holds Name.
type SenderPermission struct{ Name string }

func (s *SenderPermission) Matches(env *Env, dc *DispatchCtx) bool {
	if env == nil || env.Collab == nil {
		return false
	}
	return env.Collab.PermissionGranted(s.Name, dc.CallerPID, dc.CallerUID, dc.ReceivingUID, true)
}

func (s *SenderPermission) MatchesPackage(env *Env, pc *PackageCtx) bool {
	if env == nil || env.Collab == nil {
		return false
	}
	return env.Collab.PermissionGranted(s.Name, 0, pc.CallerUID, pc.TargetUID, true)
}

// TargetPermission matches if the resolved target requires/holds Name.
type TargetPermission struct{ Name string }

func (t *TargetPermission) Matches(env *Env, dc *DispatchCtx) bool {
	if env == nil || env.Collab == nil {
		return false
	}
	return env.Collab.PermissionGranted(t.Name, dc.CallerPID, dc.ReceivingUID, dc.ReceivingUID, false)
}

func (t *TargetPermission) MatchesPackage(env *Env, pc *PackageCtx) bool {
	if env == nil || env.Collab == nil {
		return false
	}
	return env.Collab.PermissionGranted(t.Name, 0, pc.TargetUID, pc.TargetUID, false)
}

// Provisioned matches the device-provisioned setting via the
// collaborator's configuration reader. It is meaningful on both the
// enforce and query paths since it depends on neither intent nor
// component.
type Provisioned struct{}

func (p *Provisioned) Matches(env *Env, dc *DispatchCtx) bool {
	return env != nil && env.Collab != nil && env.Collab.DeviceProvisioned()
}

func (p *Provisioned) MatchesPackage(env *Env, pc *PackageCtx) bool {
	return env != nil && env.Collab != nil && env.Collab.DeviceProvisioned()
}
