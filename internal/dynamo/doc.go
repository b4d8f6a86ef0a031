// Package dynamo provides core primitives for compartmental epidemic models.
//
// The package defines the small vocabulary shared by the engine packages:
//
//   - [State]: population per compartment, aligned with a model's dims
//   - [Params]: opaque numeric parameter record for a single run
//   - [Derivative]: right-hand side of dX/dt = f(X), closed over fixed params
//   - [Integrator]: fixed-step one-step method
//
// # Example
//
//	kind, _ := models.Lookup("SEIR")
//	f := func(x dynamo.State) dynamo.State { return kind.Derive(p, x) }
//	next := integrators.RK4{}.Step(f, x, 0.5)
//
// # Thread Safety
//
// Nothing in this package or in models/integrators holds mutable state.
// Every value is safe to share between goroutines as long as callers do not
// mutate a State or Params they handed to another goroutine.
package dynamo
