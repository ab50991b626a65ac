package http

import (
	"net/http"
	"slices"
	"strings"

	authDomain "github.com/allisson/identity/internal/auth/domain"
)

const bearerPrefix = authDomain.TokenType + " "

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	Validate(token string) (*authDomain.Claims, error)
}

// State is a position in the gate's per-request state machine.
type State int

const (
	// Unauthenticated is the initial state of every request.
	Unauthenticated State = iota
	// Authenticated means a valid token was presented; the subject is known.
	Authenticated
	// Rejected means the request must not reach the handler.
	Rejected
	// Forwarded means the request may reach the handler.
	Forwarded
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	case Forwarded:
		return "forwarded"
	default:
		return "unknown"
	}
}

// Decision is the terminal outcome of Gate.Evaluate.
//
// State is always Rejected or Forwarded. Trail lists every state the request passed
// through, starting at Unauthenticated; an authenticated request reads
// Unauthenticated, Authenticated, Forwarded and carries the subject. Exempt requests
// skip Authenticated and have an empty subject. Reason is for logs only.
type Decision struct {
	State   State
	Trail   []State
	Subject string
	Exempt  bool
	Reason  string
}

// Authenticated reports whether the request passed through the Authenticated state.
func (d Decision) Authenticated() bool {
	return slices.Contains(d.Trail, Authenticated)
}

// TrailString renders Trail as "unauthenticated>authenticated>forwarded".
func (d Decision) TrailString() string {
	names := make([]string, len(d.Trail))
	for i, s := range d.Trail {
		names[i] = s.String()
	}
	return strings.Join(names, ">")
}

// Gate decides whether a request may reach its handler.
//
// Checks run in a fixed order: pre-flight method or allow-listed path first, then
// the Authorization header shape, then token signature and expiry. Exempt requests
// are forwarded without looking at credentials.
type Gate struct {
	validator TokenValidator
	allowList map[string]struct{}
}

// NewGate creates a Gate that exempts the given request paths.
func NewGate(validator TokenValidator, allowList []string) *Gate {
	allowed := make(map[string]struct{}, len(allowList))
	for _, path := range allowList {
		allowed[path] = struct{}{}
	}
	return &Gate{validator: validator, allowList: allowed}
}

// Evaluate runs the state machine for one request.
func (g *Gate) Evaluate(method, path, authorization string) Decision {
	d := Decision{State: Unauthenticated, Trail: []State{Unauthenticated}}

	if method == http.MethodOptions {
		d.Exempt, d.Reason = true, "pre-flight request"
		return d.moveTo(Forwarded)
	}
	if _, ok := g.allowList[path]; ok {
		d.Exempt, d.Reason = true, "allow-listed path"
		return d.moveTo(Forwarded)
	}

	token, ok := ParseBearer(authorization)
	if !ok {
		reason := "malformed authorization header"
		if authorization == "" {
			reason = "missing authorization header"
		}
		d.Reason = reason
		return d.moveTo(Rejected)
	}

	claims, err := g.validator.Validate(token)
	if err != nil {
		d.Reason = "invalid token"
		return d.moveTo(Rejected)
	}

	d.Subject = claims.Subject
	return d.moveTo(Authenticated).moveTo(Forwarded)
}

func (d Decision) moveTo(s State) Decision {
	d.State = s
	d.Trail = append(d.Trail, s)
	return d
}

// ParseBearer extracts the token from an Authorization header of the form
// "Bearer <token>". The scheme is case-sensitive and must be followed by a space;
// whitespace around the token is trimmed and an empty token is rejected.
func ParseBearer(authorization string) (string, bool) {
	rest, ok := strings.CutPrefix(authorization, bearerPrefix)
	if !ok {
		return "", false
	}
	token := strings.TrimSpace(rest)
	if token == "" {
		return "", false
	}
	return token, true
}
