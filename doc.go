/*
qeplot post-processes output files produced by Quantum ESPRESSO, EPW and
Wannier90 into plots and symlinked file layouts.

The root package carries the pieces shared by every tool: unit
conversions for frequency/energy axes, Fermi-energy detection from QE
output files, and the Error interface implemented across the module.

The actual work happens in the subpackages: bz constructs 2D first
Brillouin zones and maps k-points for overlay plotting, qefile parses
the QE/EPW/Wannier90 text and XML formats, plots builds the figures, and
phlink lays out dyn/dvscf symlinks the way EPW expects to find them.
Each command under cmd wires one tool together.
*/
package qeplot
