// Package gridpath provides a square grid model and an A* pathfinder over it.
//
// It exposes two main entry points:
//
//   - Search / SearchGrid: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive editors or debugging tools.
//
// Movement is 4-directional with unit cost and the heuristic is the Manhattan
// distance, so returned paths are shortest paths. Ties between open nodes of
// equal f cost are broken by discovery order, which keeps results reproducible.
package gridpath
