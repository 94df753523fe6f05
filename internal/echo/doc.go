// Package echo implements the interactive echo loop.
//
// Each iteration prints a prompt, reads one line, and classifies it:
//   - the exit command ends the loop
//   - an empty line re-prompts
//   - anything else is a path, which is checked and, if it names a regular
//     file, printed line by line
//
// The loop moves through the states Prompting, Validating, Streaming and
// Terminated (see model.State). Rejected paths and unreadable lines are
// reported through a Reporter and the loop carries on. A closed stdin or a
// file that vanished between validation and opening ends the loop with a
// *model.CLIError.
package echo
