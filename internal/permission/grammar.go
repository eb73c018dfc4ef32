package permission

import (
	"strconv"
	"strings"
)

// Field names a mutable ticket attribute governed by change rules.
type Field string

const (
	FieldStatus   Field = "status"
	FieldPriority Field = "priority"
	FieldCategory Field = "category"
	FieldAssigned Field = "assigned"
)

func validField(f Field) bool {
	switch f {
	case FieldStatus, FieldPriority, FieldCategory, FieldAssigned:
		return true
	}
	return false
}

// RelationKind tells which ticket relationship a rule or via is about.
type RelationKind string

const (
	RelationAssignment RelationKind = "assignment"
	RelationCreation   RelationKind = "creation"
)

// Scope narrows a conditional rule to the caller, their team, or anyone.
type Scope string

const (
	ScopeSelf Scope = "self"
	ScopeTeam Scope = "team"
	ScopeAny  Scope = "any"
)

func validScope(s Scope) bool {
	switch s {
	case ScopeSelf, ScopeTeam, ScopeAny:
		return true
	}
	return false
}

// RuleContext selects which ticket relationship a scoped rule is
// evaluated against.
type RuleContext string

const (
	ContextAssigned  RuleContext = "assigned"
	ContextCreatedBy RuleContext = "createdby"
)

func validContext(c RuleContext) bool {
	return c == ContextAssigned || c == ContextCreatedBy
}

// ReadScope is the scope vocabulary of read rules.
type ReadScope string

const (
	ReadAny           ReadScope = "any"
	ReadTeamAny       ReadScope = "team:any"
	ReadTeamUnclaimed ReadScope = "team:unclaimed"
	ReadSelf          ReadScope = "self"
)

// TokenSpec is a from/to token of a change rule: either the literal
// "any" bypass or an exact numeric id. The id 0 is the unassigned
// sentinel used in claim contexts.
type TokenSpec struct {
	Any bool
	ID  int64
}

// Matches reports whether the token spec accepts the given id.
func (s TokenSpec) Matches(id int64) bool {
	return s.Any || s.ID == id
}

func parseTokenSpec(tok string) (TokenSpec, bool) {
	if tok == "any" {
		return TokenSpec{Any: true}, true
	}
	id, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return TokenSpec{}, false
	}
	return TokenSpec{ID: id}, true
}

// Rule is one parsed permission string. The stored wire format stays
// the plain colon-delimited text on user_teams and teams; parsing only
// happens in memory, once per check.
type Rule interface {
	// Raw returns the permission string the rule was parsed from.
	Raw() string
	isRule()
}

// ReadRule grants read access through an assignment or creation
// relationship, e.g. "ticket:read:assigned:team:any".
type ReadRule struct {
	raw      string
	Relation RelationKind
	Scope    ReadScope
}

func (r ReadRule) Raw() string { return r.raw }
func (ReadRule) isRule()       {}

// ChangeRule permits one field transition, optionally conditional on a
// ticket relationship, e.g.
// "ticket:action:change:status:from:1:to:2:assigned:self".
type ChangeRule struct {
	raw         string
	Field       Field
	From        TokenSpec
	To          TokenSpec
	Conditional bool
	Context     RuleContext
	Scope       Scope
}

func (r ChangeRule) Raw() string { return r.raw }
func (ChangeRule) isRule()       {}

// ClaimRule permits self-assignment of a ticket, e.g.
// "ticket:action:claim:team:unclaimed".
type ClaimRule struct {
	raw       string
	Scope     Scope
	Force     bool
	Unclaimed bool
}

func (r ClaimRule) Raw() string { return r.raw }
func (ClaimRule) isRule()       {}

// ThreadRule permits comment creation on a ticket, e.g.
// "ticket:action:thread:create:team".
type ThreadRule struct {
	raw       string
	Scope     Scope
	Unclaimed bool
}

func (r ThreadRule) Raw() string { return r.raw }
func (ThreadRule) isRule()       {}

// Parse interprets one stored permission string. It is total: anything
// it does not recognise yields (nil, false), never an error or panic,
// so malformed strings simply match nothing.
func Parse(raw string) (Rule, bool) {
	tokens := strings.Split(raw, ":")
	if len(tokens) < 3 || tokens[0] != "ticket" {
		return nil, false
	}
	switch tokens[1] {
	case "read":
		return parseRead(raw, tokens[2:])
	case "action":
		switch tokens[2] {
		case "change":
			return parseChange(raw, tokens[3:])
		case "thread":
			return parseThread(raw, tokens[3:])
		case "claim":
			return parseClaim(raw, tokens[3:])
		}
	}
	return nil, false
}

func parseRead(raw string, rest []string) (Rule, bool) {
	if len(rest) < 2 {
		return nil, false
	}
	var relation RelationKind
	switch rest[0] {
	case "assigned":
		relation = RelationAssignment
	case "createdby":
		relation = RelationCreation
	default:
		return nil, false
	}
	switch strings.Join(rest[1:], ":") {
	case "any":
		return ReadRule{raw: raw, Relation: relation, Scope: ReadAny}, true
	case "team:any":
		return ReadRule{raw: raw, Relation: relation, Scope: ReadTeamAny}, true
	case "team:unclaimed":
		return ReadRule{raw: raw, Relation: relation, Scope: ReadTeamUnclaimed}, true
	case "self":
		return ReadRule{raw: raw, Relation: relation, Scope: ReadSelf}, true
	}
	return nil, false
}

// parseChange accepts both the canonical "from:X:to:Y" layout and the
// legacy flat layout where the field token is immediately followed by
// the two specs with no labels.
func parseChange(raw string, rest []string) (Rule, bool) {
	if len(rest) < 3 || !validField(Field(rest[0])) {
		return nil, false
	}
	rule := ChangeRule{raw: raw, Field: Field(rest[0])}

	var tail []string
	if rest[1] == "from" {
		if len(rest) < 5 || rest[3] != "to" {
			return nil, false
		}
		from, ok := parseTokenSpec(rest[2])
		if !ok {
			return nil, false
		}
		to, ok := parseTokenSpec(rest[4])
		if !ok {
			return nil, false
		}
		rule.From, rule.To = from, to
		tail = rest[5:]
	} else {
		from, ok := parseTokenSpec(rest[1])
		if !ok {
			return nil, false
		}
		to, ok := parseTokenSpec(rest[2])
		if !ok {
			return nil, false
		}
		rule.From, rule.To = from, to
		tail = rest[3:]
	}

	switch len(tail) {
	case 0:
		return rule, true
	case 2:
		ctx, scope := RuleContext(tail[0]), Scope(tail[1])
		if !validContext(ctx) || !validScope(scope) {
			return nil, false
		}
		rule.Conditional = true
		rule.Context = ctx
		rule.Scope = scope
		return rule, true
	}
	return nil, false
}

func parseThread(raw string, rest []string) (Rule, bool) {
	if len(rest) < 2 || rest[0] != "create" {
		return nil, false
	}
	switch strings.Join(rest[1:], ":") {
	case "any":
		return ThreadRule{raw: raw, Scope: ScopeAny}, true
	case "team":
		return ThreadRule{raw: raw, Scope: ScopeTeam}, true
	case "self":
		return ThreadRule{raw: raw, Scope: ScopeSelf}, true
	case "team:unclaimed":
		return ThreadRule{raw: raw, Scope: ScopeTeam, Unclaimed: true}, true
	}
	return nil, false
}

func parseClaim(raw string, rest []string) (Rule, bool) {
	if len(rest) == 0 {
		return nil, false
	}
	rule := ClaimRule{raw: raw}
	switch rest[0] {
	case "any", "team", "self":
		rule.Scope = Scope(rest[0])
		rest = rest[1:]
	case "unclaimed":
		// shorthand for team:unclaimed
		rule.Scope = ScopeTeam
		rule.Unclaimed = true
		rest = rest[1:]
	default:
		return nil, false
	}
	if len(rest) == 0 {
		return rule, true
	}
	if len(rest) > 1 {
		return nil, false
	}
	switch rest[0] {
	case "force":
		rule.Force = true
	case "unclaimed":
		rule.Unclaimed = true
	default:
		return nil, false
	}
	return rule, true
}
