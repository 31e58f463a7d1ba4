// Package audit defines the structured record emitted for a logged
// denial or logged query, and a rotating append-only JSONL sink.
// Free-text fields are redacted before a record exists.
package audit

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/intentfw/ifw/internal/intent"
	"github.com/intentfw/ifw/internal/redact"
)

// Event is one audit record. ID and Timestamp let a host stitch a
// denial back to the dispatch that produced it and age records out.
type Event struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Kind                 intent.Kind `json:"kind"`
	ShortComponent       string      `json:"short_component"`
	CallerUID            int32       `json:"caller_uid"`
	CallerPackageCount   int         `json:"caller_package_count"`
	CallerPackagesJoined string      `json:"caller_packages_joined"`
	Action               string      `json:"action,omitempty"`
	ResolvedType         string      `json:"resolved_type,omitempty"`
	DataString           string      `json:"data_string,omitempty"`
	IntentFlags          int32       `json:"intent_flags,omitempty"`

	// Decision records which path and outcome produced this event:
	// "block"/"allow" on the enforcement path, "query-block"/
	// "query-allow" on the query path, so a reader can tell a denial
	// from a logged-but-allowed dispatch without re-deriving it.
	Decision string `json:"decision"`
}

// NewEvent builds an audit record for a matched rule, joining the
// caller's package list and redacting dataString before it is stored.
func NewEvent(kind intent.Kind, resolved intent.Component, callerUID int32, callerPackages []string, i *intent.Intent, resolvedType, decision string) Event {
	var action string
	var dataString string
	var flags int32
	if i != nil {
		action = i.Action
		dataString = redact.Redact(i.DataString())
		flags = i.Flags
	}
	return Event{
		ID:                   uuid.New(),
		Timestamp:            time.Now().UTC(),
		Kind:                 kind,
		ShortComponent:       resolved.String(),
		CallerUID:            callerUID,
		CallerPackageCount:   len(callerPackages),
		CallerPackagesJoined: JoinPackages(callerPackages),
		Action:               action,
		ResolvedType:         resolvedType,
		DataString:           dataString,
		IntentFlags:          flags,
		Decision:             decision,
	}
}

// The joined-packages field concatenates package names separated by
// ',' subject to a total cap of 150 characters; once the buffer has
// passed 125 the packer stops trying.
const (
	stopAppendingAt = 125
	hardCap         = 150
)

// JoinPackages builds the capped joined-packages field. A package
// that does not fit is skipped, not terminal: the packer keeps trying
// later (possibly shorter) packages until the buffer has passed
// stopAppendingAt. It never returns a string longer than hardCap.
func JoinPackages(pkgs []string) string {
	var b strings.Builder
	for _, p := range pkgs {
		if b.Len()+len(p)+1 < hardCap {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(p)
		} else if b.Len() > stopAppendingAt {
			break
		}
	}
	if b.Len() == 0 && len(pkgs) > 0 {
		// No single package fit. Emit the tail of the first one with a
		// marker; the slice is safe since a package that didn't fit is
		// at least hardCap-1 characters long.
		first := pkgs[0]
		return first[len(first)-(hardCap-1):] + "-"
	}
	return b.String()
}
