/*
Package lattice is the root of the Lattice project: a small task runner and
the scoring service it orchestrates.

# Layout

The project ships two binaries:

  - lattice: the task runner. It reads a tasks.yaml at the project root,
    maps short task names (run, test, lint, format, vet) to external
    commands, and propagates the wrapped tool's exit status unchanged.
  - scoringd: the scoring API. A JSON-over-HTTP service exposing a single
    POST /method endpoint with the online_score and clients_interests
    methods, token authentication, and an optional Redis-backed cache.

The task runner is deliberately boring: one child process per invocation,
no retries, no parallelism, no state. Whatever the wrapped tool prints and
however it exits is exactly what the operator sees.
*/
package lattice
