/*
Package task implements the Lattice task runner: a dispatch table mapping
short task names to external commands.

Tasks are declared once in a tasks.yaml file and never mutated. Running a
task spawns exactly one child process, blocks until it terminates, and
propagates its exit status unchanged. The runner performs no retries and no
recovery: whatever the wrapped tool reported is what the operator sees.
*/
package task
