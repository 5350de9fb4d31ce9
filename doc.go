/*
Package cxsim is the circuit simulation core of a grid-based integrated
circuit design sandbox.

A design is painted onto a fixed rectangular grid of cells, each of which may
carry N-type or P-type silicon, a metal layer on top of it, and a via joining
the two layers. The package compiles such a grid into a netlist of
equipotential nodes and transistors, solves the steady-state signal of every
node for a given set of driven input pins, and verifies the resolved outputs
against an expected waveform, cycle by cycle.

The editing, rendering and content-loading layers live outside this module:
they hand in a Grid snapshot and a WaveformSpec, and get back a Report.

*/
package cxsim
