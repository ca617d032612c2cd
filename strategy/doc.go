// Package strategy provides the typed algorithm registry that keeps a
// matrix-correction computation internally consistent.
//
// A correction is assembled from several interchangeable sub-algorithms
// (mass absorption, backscatter, stopping power, ionization cross section,
// mean ionization potential, surface ionization) plus the correction model
// itself. Mixing sub-algorithms from different publications silently is how
// quantification results stop being reproducible — so instead of passing
// loose values around, a Registry binds one implementation per Role and is
// handed to the solver whole.
//
// Roles are a closed enum, not runtime type objects: Add validates with a
// plain type assertion that the instance satisfies the role's interface
// (ErrRoleMismatch otherwise), and Get of an unregistered role reports
// ErrNoAlgorithm — callers must treat that as a fatal missing dependency,
// never default silently.
//
// Merge semantics mirror strategy overlaying:
//
//	base.Apply(patch)  — overwrite only roles base already has (intersection)
//	base.AddAll(patch) — union; patch wins on collision
//
// ⚙️ Usage:
//
//	reg := strategy.Default()                       // Simple + defaults
//	reg.Add(strategy.RoleMassAbsorption, myMAC)     // swap one part
//	alg, err := strategy.CorrectionFrom(reg)        // consistent Algorithm
package strategy
