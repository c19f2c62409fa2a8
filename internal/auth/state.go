package auth

// Phase is the lifecycle position of the admin session.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseAuthenticated
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Source records which evidence made the session active.
type Source int

const (
	SourceNone Source = iota
	// SourceHosted is a live session at the hosted auth service.
	SourceHosted
	// SourceLocalToken is the persisted fallback token.
	SourceLocalToken
)

func (s Source) String() string {
	switch s {
	case SourceHosted:
		return "hosted"
	case SourceLocalToken:
		return "local_token"
	default:
		return "none"
	}
}

// State is the admin session: Initializing, Authenticated(source) or
// Unauthenticated. Source is SourceNone unless Phase is PhaseAuthenticated.
type State struct {
	Phase  Phase
	Source Source
}

var (
	initializing    = State{Phase: PhaseInitializing}
	unauthenticated = State{Phase: PhaseUnauthenticated}
)

func authenticated(src Source) State {
	return State{Phase: PhaseAuthenticated, Source: src}
}

// resolve derives the session from its two sources. The hosted session wins
// when both are present.
func resolve(hosted bool, localToken bool) State {
	switch {
	case hosted:
		return authenticated(SourceHosted)
	case localToken:
		return authenticated(SourceLocalToken)
	default:
		return unauthenticated
	}
}

func (s State) Active() bool {
	return s.Phase == PhaseAuthenticated
}

func (s State) Resolved() bool {
	return s.Phase != PhaseInitializing
}
