/*
Package domain contains the core vocabulary of the MetaChem engine.

It defines the closed set of control roles and container kinds, the access
rules that bind them together, the error taxonomy shared by every layer and
the events emitted while a graph is being walked. This package is kept pure
and free of I/O so that containers, nodes, the graph builder and the runtime
can all depend on it.

# Key Entities

  - Role: the five control roles (Sampler, Observer, Action, Decision, Termination).
  - Kind: the three container kinds (Tank, Sample, Environment).
  - AccessMode: how a node touches a container (read-only, mutate-in, mutate-out).
  - CheckAccess: the role × kind × mode compatibility table.
  - LifecycleHooks: callbacks for observing a run.
*/
package domain
