/*
Package control defines the control nodes of a MetaChem graph.

A node has exactly one role (domain.Role) and owns references to the
containers it touches, split into read-only, mutate-in and mutate-out sets
(Access). The role set is closed: a concrete node type embeds one of
SamplerBase, ObserverBase, ActionBase or DecisionBase, or is a Termination.
The base constructors reject containers whose kind the role may not touch.

Non-decision nodes implement Lifecycle. The engine calls Read, then draws a
uniform u in [0,1) and runs Pull, Process and Push only when Check() < u.
Decisions implement Decider and return the index of the successor to follow.

The package also ships the standard node library: brute, simple and ordered
samplers, clock observers, counter and empty decisions and a no-op action.
*/
package control
