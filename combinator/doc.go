// Package combinator provides the parser signature, the parse error taxonomy
// and the primitive matchers that the parsefrom capability is built on.
//
// # Design Philosophy
//
// A parser is a plain function from a cursor to a remainder, a value and an
// error. Larger parsers are built by passing parsers to generic combinators
// rather than by implementing interfaces, so any function with the right
// signature (including a method value) composes with everything else.
//
// # Outcomes
//
// A parser returns exactly one of:
//
//   - success: err is nil and the returned cursor starts right after the
//     consumed input;
//   - *Error: a recoverable mismatch or range violation. Alt, Opt and the
//     repetition combinators backtrack over it;
//   - *Incomplete: only for streaming cursors, more data is needed;
//   - *Failure: an error promoted by Cut that must not be backtracked.
//
// # Parsing Modes
//
// Every primitive honours the mode of the cursor it receives (see
// input.Mode). In complete mode the end of the buffer is the end of the input.
// In streaming mode a primitive that reaches the end of the buffer while it
// could still match more reports *Incomplete instead of deciding.
package combinator
