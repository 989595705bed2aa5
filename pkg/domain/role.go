package domain

import "fmt"

// Role is the processing role of a control node.
type Role int

const (
	RoleSampler Role = iota + 1
	RoleObserver
	RoleAction
	RoleDecision
	RoleTermination
)

func (r Role) String() string {
	switch r {
	case RoleSampler:
		return "sampler"
	case RoleObserver:
		return "observer"
	case RoleAction:
		return "action"
	case RoleDecision:
		return "decision"
	case RoleTermination:
		return "termination"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Kind tags a container with the class of content it holds.
type Kind int

const (
	// KindTank holds particles that only Samplers may move.
	KindTank Kind = iota + 1
	// KindSample holds particles that Actions may transform.
	KindSample
	// KindEnvironment holds scalar or record state, never particles.
	KindEnvironment
)

func (k Kind) String() string {
	switch k {
	case KindTank:
		return "tank"
	case KindSample:
		return "sample"
	case KindEnvironment:
		return "environment"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// IsParticle reports whether the kind stores particles.
func (k Kind) IsParticle() bool {
	return k == KindTank || k == KindSample
}

// AccessMode describes how a node touches a container.
type AccessMode int

const (
	// AccessRead is a read-only observation.
	AccessRead AccessMode = iota + 1
	// AccessMutateIn is a container the node pulls content from.
	AccessMutateIn
	// AccessMutateOut is a container the node pushes content to.
	AccessMutateOut
)

func (m AccessMode) String() string {
	switch m {
	case AccessRead:
		return "read"
	case AccessMutateIn:
		return "mutate-in"
	case AccessMutateOut:
		return "mutate-out"
	default:
		return fmt.Sprintf("access(%d)", int(m))
	}
}

// CheckAccess validates a single access edge between a node of the given role
// and a container of the given kind. It returns nil when the edge is allowed
// and a reason otherwise.
//
// The table:
//
//	Sampler      mutate-in/out: tank, sample          read: any
//	Observer     mutate-in/out: environment           read: any
//	Action       mutate-in/out: sample                read: any
//	Decision     read: any                            no mutation
//	Termination  no access
func CheckAccess(role Role, kind Kind, mode AccessMode) error {
	if kind < KindTank || kind > KindEnvironment {
		return fmt.Errorf("unknown container kind %s", kind)
	}

	switch role {
	case RoleTermination:
		return fmt.Errorf("termination nodes cannot access containers")
	case RoleDecision:
		if mode != AccessRead {
			return fmt.Errorf("decision nodes can only read containers")
		}
		return nil
	}

	if mode == AccessRead {
		return nil
	}

	switch role {
	case RoleSampler:
		if !kind.IsParticle() {
			return fmt.Errorf("sampler can only %s particle containers, got %s", mode, kind)
		}
	case RoleObserver:
		if kind != KindEnvironment {
			return fmt.Errorf("observer can only %s environment containers, got %s", mode, kind)
		}
	case RoleAction:
		if kind != KindSample {
			return fmt.Errorf("action can only %s sample containers, got %s", mode, kind)
		}
	default:
		return fmt.Errorf("unknown role %s", role)
	}
	return nil
}
