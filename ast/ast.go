// Package ast defines the syntax tree produced by the BEL statement parser.
// Variant and fusion types carry their canonical BEL text via String so the
// graph builder can derive stable node identities without re-parsing.
package ast

import (
	"fmt"
	"strings"
)

// EnsureQuotes wraps s in double quotes unless it is purely alphanumeric.
// BEL only requires quoting for values with spaces or punctuation, and
// canonical output quotes exactly those.
func EnsureQuotes(s string) string {
	for _, r := range s {
		if !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9') {
			return `"` + s + `"`
		}
	}
	if s == "" {
		return `""`
	}
	return s
}

// Identifier is a namespace-qualified value, e.g. HGNC:AKT1. An empty
// Namespace means the default BEL namespace (activity labels, pmod codes).
type Identifier struct {
	Namespace string
	Name      string
}

func (i Identifier) String() string {
	if i.Namespace == "" {
		return EnsureQuotes(i.Name)
	}
	return i.Namespace + ":" + EnsureQuotes(i.Name)
}

// Term is any abundance-like expression that can stand as a statement
// operand or a member of an aggregate.
type Term interface {
	belTerm()
}

// SimpleAbundance is a plain namespaced abundance, e.g. p(HGNC:AKT1).
type SimpleAbundance struct {
	Kind     string
	ID       Identifier
	Location *Identifier
}

// ModifiedAbundance is an abundance carrying one or more variants, e.g.
// p(HGNC:AKT1, pmod(Ph, Ser, 473)).
type ModifiedAbundance struct {
	Kind     string
	ID       Identifier
	Variants []Variant
	Location *Identifier
}

// FusedAbundance is an abundance whose content is a fusion, e.g.
// g(fus(HGNC:TMPRSS2, "r.1_79", HGNC:ERG, "r.312_5034")).
type FusedAbundance struct {
	Kind     string
	Fusion   Fusion
	Location *Identifier
}

// ComplexList is an enumerated complex: complex(p(...), p(...)).
// Named complexes (complex(SCOMP:"AP-1 Complex")) parse as SimpleAbundance.
type ComplexList struct {
	Members  []Term
	Location *Identifier
}

// Composite is a composite abundance: composite(a(...), p(...)).
type Composite struct {
	Members []Term
}

// Reaction is rxn(reactants(...), products(...)).
type Reaction struct {
	Reactants []Term
	Products  []Term
}

// ModifiedTerm wraps a term in a statement-level modifier such as act() or
// tloc(). Modifiers qualify edges; they never create nodes.
type ModifiedTerm struct {
	Modifier TermModifier
	Target   Term
}

// TermModifier is the payload a ModifiedTerm contributes to an edge.
// Kind is one of the lang modifier constants. Activity is set for act()
// with an explicit ma(); FromLoc and ToLoc are set for tloc() and are
// implied for sec() and surf().
type TermModifier struct {
	Kind     string
	Activity *Identifier
	FromLoc  *Identifier
	ToLoc    *Identifier
}

func (SimpleAbundance) belTerm()   {}
func (ModifiedAbundance) belTerm() {}
func (FusedAbundance) belTerm()    {}
func (ComplexList) belTerm()       {}
func (Composite) belTerm()         {}
func (Reaction) belTerm()          {}
func (ModifiedTerm) belTerm()      {}

// Variant is any physical variation attached to a gene, RNA, miRNA, or
// protein abundance. String returns the canonical BEL text, which doubles
// as the variant's contribution to node identity.
type Variant interface {
	belVariant()
	String() string
}

// ProteinModification is pmod(). Name identifies the modification type,
// either in the default namespace (Ph, Me, Ub) or qualified (MOD:PhosRes).
// Code is the optional three-letter amino acid code, Position the optional
// residue number.
type ProteinModification struct {
	Name     Identifier
	Code     string
	Position *int
}

func (ProteinModification) belVariant() {}

func (p ProteinModification) String() string {
	var sb strings.Builder
	sb.WriteString("pmod(")
	sb.WriteString(p.Name.String())
	if p.Code != "" {
		sb.WriteString(", ")
		sb.WriteString(p.Code)
	}
	if p.Position != nil {
		sb.WriteString(fmt.Sprintf(", %d", *p.Position))
	}
	sb.WriteString(")")
	return sb.String()
}

// SequenceVariant is var(), holding an uninterpreted HGVS string.
type SequenceVariant struct {
	HGVS string
}

func (SequenceVariant) belVariant() {}

func (v SequenceVariant) String() string {
	return `var("` + v.HGVS + `")`
}

// Substitution is the legacy BEL 1.0 sub() variant. It survives parsing with
// a deprecation warning and canonicalizes as its legacy text.
type Substitution struct {
	Reference string
	Position  int
	Variant   string
}

func (Substitution) belVariant() {}

func (s Substitution) String() string {
	return fmt.Sprintf("sub(%s, %d, %s)", s.Reference, s.Position, s.Variant)
}

// Fragment is frag(). Start and Stop are coordinate strings: digits, "?"
// for unknown, or "*" for an open stop. Missing marks frag(?) with an
// entirely unknown range.
type Fragment struct {
	Missing     bool
	Start       string
	Stop        string
	Description string
}

func (Fragment) belVariant() {}

func (f Fragment) String() string {
	var rng string
	if f.Missing {
		rng = "?"
	} else {
		rng = f.Start + "_" + f.Stop
	}
	if f.Description != "" {
		return fmt.Sprintf("frag(%q, %q)", rng, f.Description)
	}
	return fmt.Sprintf("frag(%q)", rng)
}

// FusionRange is the coordinate range of one fusion partner, e.g. r.1_79.
// Missing marks an unspecified range written as "?".
type FusionRange struct {
	Missing   bool
	Reference string
	Start     string
	Stop      string
}

func (r FusionRange) String() string {
	if r.Missing {
		return "?"
	}
	return r.Reference + "." + r.Start + "_" + r.Stop
}

// Fusion is the payload of fus(): a 5' partner, a 3' partner, and their
// coordinate ranges.
type Fusion struct {
	Partner5 Identifier
	Range5   FusionRange
	Partner3 Identifier
	Range3   FusionRange
}

func (f Fusion) String() string {
	return fmt.Sprintf("fus(%s, %q, %s, %q)",
		f.Partner5.String(), f.Range5.String(),
		f.Partner3.String(), f.Range3.String())
}
