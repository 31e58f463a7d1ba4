// Package mock is a test-only stand-in for the host's package manager
// and dispatcher collaborator, used by every package that evaluates
// predicates or dispatches through the façade.
package mock

import "sync"

// Collaborator implements provider.PackageProvider and
// provider.Collaborator with maps and slices a test populates directly.
type Collaborator struct {
	mu sync.Mutex

	PackagesByUID   map[int32][]string
	SignaturesByUID map[int32][][]byte
	Platform        []byte
	Permissions     map[string]bool
	Provisioned     bool

	// IdentityDropped counts outstanding DropIdentity calls that have
	// not yet been restored, so tests can assert restoration happened
	// on every exit path.
	IdentityDropped int
}

// New returns an empty Collaborator ready for a test to populate.
func New() *Collaborator {
	return &Collaborator{
		PackagesByUID:   map[int32][]string{},
		SignaturesByUID: map[int32][][]byte{},
		Permissions:     map[string]bool{},
		Provisioned:     true,
	}
}

func (c *Collaborator) Packages(uid int32) []string { return c.PackagesByUID[uid] }

func (c *Collaborator) Signatures(uid int32) [][]byte { return c.SignaturesByUID[uid] }

func (c *Collaborator) PlatformSignature() []byte { return c.Platform }

func (c *Collaborator) PermissionGranted(permission string, pid, uid, owningUid int32, exported bool) bool {
	return c.Permissions[permission]
}

func (c *Collaborator) Lock() sync.Locker { return &c.mu }

func (c *Collaborator) DeviceProvisioned() bool { return c.Provisioned }

// DropIdentity increments IdentityDropped and returns a restore
// function that decrements it, so a test can assert every drop was
// restored by checking IdentityDropped == 0 after the call under test.
func (c *Collaborator) DropIdentity() func() {
	c.mu.Lock()
	c.IdentityDropped++
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.IdentityDropped--
		c.mu.Unlock()
	}
}

// GrantSignature makes uid's signature set equal to the platform
// signature, the condition the "signature" sender/target class checks.
func (c *Collaborator) GrantSignature(uid int32) {
	c.SignaturesByUID[uid] = [][]byte{c.Platform}
}
