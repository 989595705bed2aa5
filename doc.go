/*
Package metachem is an execution engine for artificial chemistry simulations.

A simulation is a directed graph. Containers hold particles or environment
state; control nodes (Samplers, Observers, Actions, Decisions and
Terminations) declare which containers they read and mutate. The engine walks
a single pointer over the control edges, running each node's lifecycle behind
a stochastic gate and following the option a Decision returns.

# Concept

Containers live in package container, the node roles and the standard node
library in package control, and the two-phase builder in package graph.
Reusable layouts such as the well-mixed tank are in package template, and
package registry maps chemistry names to factories.

# Usage

	clock := container.NewList("clock", domain.KindEnvironment)
	_ = clock.Add(0)
	tick, _ := control.NewClockObserver("tick", clock, 1)
	done, _ := control.NewCounterDecision("done", 2, 3, clock)
	end, _ := control.NewTermination("end")

	b := graph.NewBuilder("countdown")
	_ = b.AddContainer(clock)
	_ = b.AddNode(tick, done, end)
	_ = b.Chain("tick", "done")
	_ = b.Connect("done", "tick")
	_ = b.Connect("done", "end")
	g, err := b.Build()
	if err != nil {
		log.Fatal(err)
	}

	res, err := metachem.New().Run(context.Background(), g, "tick", 100)
*/
package metachem
