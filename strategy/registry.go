package strategy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/epmalab/microquant/correction"
)

// Sentinel errors for registry operations.
var (
	// ErrRoleMismatch indicates an instance that does not implement the
	// interface its role demands.
	ErrRoleMismatch = errors.New("strategy: instance does not satisfy role")

	// ErrNoAlgorithm indicates a Get for an unregistered role. Callers must
	// treat this as a fatal missing dependency.
	ErrNoAlgorithm = errors.New("strategy: no algorithm registered for role")

	// ErrUnknownRole indicates a Role value outside the declared constants.
	ErrUnknownRole = errors.New("strategy: unknown role")
)

// Role identifies one swappable slot of a matrix-correction computation.
type Role int

const (
	// RoleCorrection is the top-level correction.Algorithm slot.
	RoleCorrection Role = iota

	// RoleMassAbsorption supplies mass absorption coefficients.
	RoleMassAbsorption

	// RoleBackscatter supplies the backscatter loss factor R.
	RoleBackscatter

	// RoleStoppingPower supplies the stopping-power term S.
	RoleStoppingPower

	// RoleIonizationCrossSection supplies shell ionization cross sections.
	RoleIonizationCrossSection

	// RoleMeanIonizationPotential supplies per-element J values.
	RoleMeanIonizationPotential

	// RoleSurfaceIonization supplies φ(0) surface ionization values.
	RoleSurfaceIonization

	numRoles int = iota
)

var roleNames = [...]string{
	"Correction",
	"MassAbsorption",
	"Backscatter",
	"StoppingPower",
	"IonizationCrossSection",
	"MeanIonizationPotential",
	"SurfaceIonization",
}

// String returns the role's name.
func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// satisfies reports whether impl implements the interface of role r.
func (r Role) satisfies(impl any) bool {
	switch r {
	case RoleCorrection:
		_, ok := impl.(correction.Algorithm)
		return ok
	case RoleMassAbsorption:
		_, ok := impl.(correction.MassAbsorption)
		return ok
	case RoleBackscatter:
		_, ok := impl.(correction.Backscatter)
		return ok
	case RoleStoppingPower:
		_, ok := impl.(correction.StoppingPower)
		return ok
	case RoleIonizationCrossSection:
		_, ok := impl.(correction.IonizationCrossSection)
		return ok
	case RoleMeanIonizationPotential:
		_, ok := impl.(correction.MeanIonizationPotential)
		return ok
	case RoleSurfaceIonization:
		_, ok := impl.(correction.SurfaceIonization)
		return ok
	}
	return false
}

// Registry maps roles to concrete algorithm instances.
//
// The zero Registry is empty and usable. A Registry is not safe for
// concurrent mutation; populate it during setup, then share read-only.
type Registry struct {
	impls map[Role]any
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{impls: make(map[Role]any, numRoles)}
}

// Default returns a registry wired with the shipped implementations:
// Simple correction, power-law MAC, Yakowitz backscatter, Bethe stopping
// power, Berger–Seltzer J.
func Default() *Registry {
	r := New()
	mac := correction.PowerLawMAC{}
	// Add cannot fail here: every instance matches its role by construction.
	_ = r.Add(RoleMassAbsorption, mac)
	_ = r.Add(RoleBackscatter, correction.YakowitzBackscatter{})
	_ = r.Add(RoleStoppingPower, correction.BetheStopping{})
	_ = r.Add(RoleMeanIonizationPotential, correction.BergerSeltzerJ{})
	_ = r.Add(RoleCorrection, correction.NewSimple(mac))
	return r
}

// Add binds impl to role after validating the interface contract.
func (r *Registry) Add(role Role, impl any) error {
	if role < 0 || int(role) >= numRoles {
		return fmt.Errorf("%w: %d", ErrUnknownRole, int(role))
	}
	if impl == nil || !role.satisfies(impl) {
		return fmt.Errorf("%w: %s got %T", ErrRoleMismatch, role, impl)
	}
	if r.impls == nil {
		r.impls = make(map[Role]any, numRoles)
	}
	r.impls[role] = impl
	return nil
}

// Get returns the instance bound to role, or ErrNoAlgorithm.
func (r *Registry) Get(role Role) (any, error) {
	impl, ok := r.impls[role]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoAlgorithm, role)
	}
	return impl, nil
}

// Has reports whether role is bound.
func (r *Registry) Has(role Role) bool {
	_, ok := r.impls[role]
	return ok
}

// Roles returns the bound roles in declaration order.
func (r *Registry) Roles() []Role {
	out := make([]Role, 0, len(r.impls))
	for role := range r.impls {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Apply overwrites the roles r already has with other's bindings for those
// roles — merge-intersection. Roles present only in other are ignored.
func (r *Registry) Apply(other *Registry) {
	if other == nil {
		return
	}
	for role := range r.impls {
		if impl, ok := other.impls[role]; ok {
			r.impls[role] = impl
		}
	}
}

// AddAll unions other's bindings into r; other wins on collision.
func (r *Registry) AddAll(other *Registry) {
	if other == nil {
		return
	}
	if r.impls == nil {
		r.impls = make(map[Role]any, len(other.impls))
	}
	for role, impl := range other.impls {
		r.impls[role] = impl
	}
}

// CorrectionFrom extracts the RoleCorrection instance from reg. When the
// bound correction is the shipped Simple model, its sub-algorithm slots are
// rebuilt from reg so that a swapped MAC/backscatter/stopping part is
// honored consistently.
func CorrectionFrom(reg *Registry) (correction.Algorithm, error) {
	impl, err := reg.Get(RoleCorrection)
	if err != nil {
		return nil, err
	}
	alg := impl.(correction.Algorithm) // validated at Add time

	if _, isSimple := impl.(*correction.Simple); isSimple {
		var (
			mac correction.MassAbsorption
			bks correction.Backscatter
			stp correction.StoppingPower
		)
		macImpl, err := reg.Get(RoleMassAbsorption)
		if err != nil {
			return nil, err
		}
		mac = macImpl.(correction.MassAbsorption)
		if b, errB := reg.Get(RoleBackscatter); errB == nil {
			bks = b.(correction.Backscatter)
		}
		if s, errS := reg.Get(RoleStoppingPower); errS == nil {
			stp = s.(correction.StoppingPower)
		}
		return correction.NewSimpleFromParts(mac, bks, stp), nil
	}
	return alg, nil
}
